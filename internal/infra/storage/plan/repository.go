package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatBookingService/pkg/psqlbuilder"
)

// Repository репозиторий планов подписки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория планов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает план библиотеки по ID. План другой библиотеки считается ненайденным.
func (r *Repository) GetByID(ctx context.Context, libraryID, id int64) (*domain.Plan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"library_id",
		"plan_type",
		"hours",
		"price",
		"time_slot_id",
		"slot_pools",
		"description",
		"created_at",
		"updated_at",
	).
		From("plans").
		Where(squirrel.Eq{"id": id, "library_id": libraryID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Plan
	var pools []string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.LibraryID,
		&p.PlanType,
		&p.Hours,
		&p.Price,
		&p.TimeSlotID,
		pq.Array(&pools),
		&p.Description,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan plan: %v", ErrScanRow, err)
	}

	if len(pools) > 0 {
		p.SlotPools = make(domain.SlotPools, len(pools))
		for i, pool := range pools {
			p.SlotPools[i] = domain.SlotPool(pool)
		}
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
