package seat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-SeatBookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"library_id",
	"seat_number",
	"mode",
	"is_active",
	"allowed_plan_ids",
	"locker_auto_include",
	"locker_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий мест
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDForUpdate получает место библиотеки и в транзакции блокирует его строку.
// Это блокировка по seat_id, под которой выполняются проверка пересечений и вставка бронирования.
func (r *Repository) GetByIDForUpdate(ctx context.Context, libraryID, id int64) (*domain.Seat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("seats").
		Where(squirrel.Eq{"id": id, "library_id": libraryID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	seat, err := scanSeat(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetByIDForUpdate - scan seat: %v", ErrScanRow, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByIDForUpdate - scan seat: %v", ErrScanRow, err)
	}

	return seat, nil
}

// GetByLibrary получает инвентарь библиотеки, отсортированный по номеру места.
// Неактивные места тоже возвращаются: отсев делает движок подбора.
func (r *Repository) GetByLibrary(ctx context.Context, libraryID int64) ([]*domain.Seat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("seats").
		Where(squirrel.Eq{"library_id": libraryID}).
		OrderBy("seat_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByLibrary - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetByLibrary - execute query: %v", ErrExecQuery, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByLibrary - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	seats := make([]*domain.Seat, 0)
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByLibrary - scan row: %v", ErrScanRow, err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetByLibrary - rows error: %v", ErrScanRow, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByLibrary - rows error: %v", ErrScanRow, err)
	}

	return seats, nil
}

// GetSeatNumbers возвращает уже занятые номера мест библиотеки
func (r *Repository) GetSeatNumbers(ctx context.Context, libraryID int64) (map[int]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("seat_number").
		From("seats").
		Where(squirrel.Eq{"library_id": libraryID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSeatNumbers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeatNumbers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	numbers := make(map[int]bool)
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("%w: GetSeatNumbers - scan row: %v", ErrScanRow, err)
		}
		numbers[n] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSeatNumbers - rows error: %v", ErrScanRow, err)
	}

	return numbers, nil
}

// CreateBatch вставляет места одним запросом. ID и даты создания выдаёт БД.
func (r *Repository) CreateBatch(ctx context.Context, seats []*domain.Seat) ([]*domain.Seat, error) {
	if len(seats) == 0 {
		return seats, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("seats").
		Columns(
			"library_id",
			"seat_number",
			"mode",
			"is_active",
			"allowed_plan_ids",
			"locker_auto_include",
			"locker_id",
		)

	for _, s := range seats {
		insertBuilder = insertBuilder.Values(
			s.LibraryID,
			s.SeatNumber,
			s.Mode,
			s.IsActive,
			pq.Array(allowedPlanIDs(s)),
			s.LockerAutoInclude,
			s.LockerID,
		)
	}

	query, args, err := insertBuilder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.Code(err) == pgerr.CodeUniqueViolation {
			return nil, fmt.Errorf("%w: CreateBatch: %v", ErrDuplicateSeatNumber, err)
		}
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	created := make([]*domain.Seat, 0, len(seats))
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %v", ErrScanRow, err)
		}
		created = append(created, seat)
	}

	if err := rows.Err(); err != nil {
		if pgerr.Code(err) == pgerr.CodeUniqueViolation {
			return nil, fmt.Errorf("%w: CreateBatch: %v", ErrDuplicateSeatNumber, err)
		}
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return created, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSeat(row rowScanner) (*domain.Seat, error) {
	var s domain.Seat
	var allowed []int64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.LibraryID,
		&s.SeatNumber,
		&s.Mode,
		&s.IsActive,
		pq.Array(&allowed),
		&s.LockerAutoInclude,
		&s.LockerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.AllowedPlanIDs = allowed
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func allowedPlanIDs(s *domain.Seat) []int64 {
	if s.AllowedPlanIDs == nil {
		return []int64{}
	}
	return s.AllowedPlanIDs
}
