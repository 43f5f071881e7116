package timeslot

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

// Repository репозиторий временных слотов библиотеки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот библиотеки по ID. Слот другой библиотеки считается ненайденным.
// daily_hours не читается: длительность всегда считается из start/end.
func (r *Repository) GetByID(ctx context.Context, libraryID, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"library_id",
		"name",
		"start_time",
		"end_time",
		"slot_pools",
		"created_at",
		"updated_at",
	).
		From("time_slots").
		Where(squirrel.Eq{"id": id, "library_id": libraryID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.TimeSlot
	var pools []string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.LibraryID,
		&slot.Name,
		&slot.StartTime,
		&slot.EndTime,
		pq.Array(&pools),
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time slot: %v", ErrScanRow, err)
	}

	slot.SlotPools = make(domain.SlotPools, len(pools))
	for i, p := range pools {
		slot.SlotPools[i] = domain.SlotPool(p)
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
