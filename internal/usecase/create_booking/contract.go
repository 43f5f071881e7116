package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/internal/usecase/calculate_pricing"
)

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	GetByID(ctx context.Context, libraryID, id int64) (*domain.Plan, error)
}

// TimeSlotRepository интерфейс репозитория временных слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, libraryID, id int64) (*domain.TimeSlot, error)
}

// SeatRepository интерфейс репозитория мест
type SeatRepository interface {
	GetByLibrary(ctx context.Context, libraryID int64) ([]*domain.Seat, error)
	GetByIDForUpdate(ctx context.Context, libraryID, id int64) (*domain.Seat, error)
}

// LockerRepository интерфейс репозитория шкафчиков
type LockerRepository interface {
	GetByIDForUpdate(ctx context.Context, libraryID, id int64) (*domain.Locker, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error)
}

// PricingQuoter интерфейс расчёта цены по уже загруженным данным
type PricingQuoter interface {
	Quote(ctx context.Context, params calculate_pricing.QuoteParams) (*domain.PricingBreakdown, error)
}

// SeatCache интерфейс кэша листингов мест
type SeatCache interface {
	InvalidateLibrary(ctx context.Context, libraryID int64) error
}

// Metrics интерфейс метрик бронирования
type Metrics interface {
	IncBookingCreated(status string)
	IncConcurrencyConflict(operation string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
