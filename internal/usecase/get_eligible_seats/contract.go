package get_eligible_seats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
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
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error)
}

// SeatCache интерфейс кэша листингов
type SeatCache interface {
	Get(ctx context.Context, key string) ([]*domain.Seat, bool, error)
	Set(ctx context.Context, key string, seats []*domain.Seat) error
}

// Metrics интерфейс метрик кэша
type Metrics interface {
	IncSeatCacheLookup(result string)
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
