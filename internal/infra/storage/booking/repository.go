package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-SeatBookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"reference",
	"student_id",
	"library_id",
	"plan_id",
	"seat_id",
	"locker_id",
	"valid_from",
	"valid_to",
	"status",
	"total_amount",
	"plan_type",
	"slot_pools",
	"offer_id",
	"upgraded_from_id",
	"created_by",
	"notes",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion-ограничения на пересечение периодов места возвращается как ErrOverlap + pgerr.ErrConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"student_id",
			"library_id",
			"plan_id",
			"seat_id",
			"locker_id",
			"valid_from",
			"valid_to",
			"status",
			"total_amount",
			"plan_type",
			"slot_pools",
			"offer_id",
			"upgraded_from_id",
			"created_by",
			"notes",
		).
		Values(
			booking.Reference,
			booking.StudentID,
			booking.LibraryID,
			booking.PlanID,
			booking.SeatID,
			booking.LockerID,
			booking.ValidFrom,
			booking.ValidTo,
			booking.Status,
			booking.TotalAmount,
			booking.PlanType,
			pq.Array(booking.SlotPools.Strings()),
			booking.OfferID,
			booking.UpgradedFromID,
			booking.CreatedBy,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pgerr.Code(err) == pgerr.CodeExclusionViolation {
			return nil, fmt.Errorf("%w: %w: Create - seat_id=%v: %v", ErrOverlap, pgerr.ErrConflict, booking.SeatID, err)
		}
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: Create - execute insert: %v", ErrExecQuery, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку (апгрейд и смена статуса)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetByID - scan booking: %v", ErrScanRow, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByStudentID получает бронирования студента, опционально по библиотеке и статусу
func (r *Repository) GetByStudentID(ctx context.Context, studentID int64, libraryID *int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("valid_from DESC", "id DESC")

	if libraryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"library_id": *libraryID})
	}
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByLibraryWithFilter получает бронирования библиотеки с фильтрацией.
// Период From/To выбирает бронирования, пересекающиеся с [From, To).
// Без Status и IncludeInactive возвращаются только PENDING/ACTIVE.
func (r *Repository) GetByLibraryWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"library_id": filter.LibraryID})

	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.SeatID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"seat_id": *filter.SeatID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"valid_to": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"valid_from": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.OccupyingStatuses)})
	}

	query, args, err := selectBuilder.OrderBy("valid_from ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLibraryWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLibraryWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOverlapping получает PENDING/ACTIVE бронирования, пересекающиеся с filter.Range.
// В транзакции строки блокируются (FOR UPDATE), чтобы проверка и вставка были атомарны.
func (r *Repository) GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"library_id": filter.LibraryID}).
		Where(squirrel.Eq{"status": statusStrings(domain.OccupyingStatuses)}).
		Where(squirrel.Lt{"valid_from": filter.Range.To}).
		Where(squirrel.Gt{"valid_to": filter.Range.From})

	if filter.SeatID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"seat_id": *filter.SeatID})
	}
	if filter.LockerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"locker_id": *filter.LockerID})
	}
	if filter.PlanType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"plan_type": *filter.PlanType})
	}
	if filter.ExcludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeBookingID})
	}

	selectBuilder = selectBuilder.OrderBy("id ASC")
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetOverlapping - execute query: %v", ErrExecQuery, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины и того, кто отменил
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, cancelledBy int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_by", cancelledBy).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return fmt.Errorf("%w: %w: %s - execute update: %v", ErrExecQuery, pgerr.ErrConflict, op, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var pools []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.StudentID,
		&booking.LibraryID,
		&booking.PlanID,
		&booking.SeatID,
		&booking.LockerID,
		&booking.ValidFrom,
		&booking.ValidTo,
		&booking.Status,
		&booking.TotalAmount,
		&booking.PlanType,
		pq.Array(&pools),
		&booking.OfferID,
		&booking.UpgradedFromID,
		&booking.CreatedBy,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledBy,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.SlotPools = toSlotPools(pools)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: scanBookings - rows error: %v", ErrScanRow, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// toSlotPools без валидации: значения в БД уже проверены при записи
func toSlotPools(raw []string) domain.SlotPools {
	pools := make(domain.SlotPools, len(raw))
	for i, p := range raw {
		pools[i] = domain.SlotPool(p)
	}
	return pools
}
