package locker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-SeatBookingService/pkg/psqlbuilder"
)

// Repository репозиторий шкафчиков
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория шкафчиков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает шкафчик библиотеки по ID
func (r *Repository) GetByID(ctx context.Context, libraryID, id int64) (*domain.Locker, error) {
	return r.get(ctx, libraryID, id, false)
}

// GetByIDForUpdate получает шкафчик и блокирует строку до конца транзакции.
// Блокировка сериализует проверку ёмкости между параллельными бронированиями одного шкафчика.
func (r *Repository) GetByIDForUpdate(ctx context.Context, libraryID, id int64) (*domain.Locker, error) {
	return r.get(ctx, libraryID, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, libraryID, id int64, forUpdate bool) (*domain.Locker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"library_id",
		"locker_type",
		"number_of_lockers",
		"price",
		"created_at",
		"updated_at",
	).
		From("lockers").
		Where(squirrel.Eq{"id": id, "library_id": libraryID})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var l domain.Locker
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&l.ID,
		&l.LibraryID,
		&l.LockerType,
		&l.NumberOfLockers,
		&l.Price,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLockerNotFound
	}
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetByID - scan locker: %v", ErrScanRow, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan locker: %v", ErrScanRow, err)
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return &l, nil
}
