package configure_seats

import (
	"context"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

// SeatRepository интерфейс репозитория мест
type SeatRepository interface {
	GetSeatNumbers(ctx context.Context, libraryID int64) (map[int]bool, error)
	CreateBatch(ctx context.Context, seats []*domain.Seat) ([]*domain.Seat, error)
}

// PlanRepository интерфейс репозитория планов (проверка allow-list SPECIAL мест)
type PlanRepository interface {
	GetByID(ctx context.Context, libraryID, id int64) (*domain.Plan, error)
}

// LockerRepository интерфейс репозитория шкафчиков
type LockerRepository interface {
	GetByID(ctx context.Context, libraryID, id int64) (*domain.Locker, error)
}

// SeatCache интерфейс кэша листингов мест
type SeatCache interface {
	InvalidateLibrary(ctx context.Context, libraryID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
