package calculate_pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/internal/integrations/studentdirectory"
)

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	GetByID(ctx context.Context, libraryID, id int64) (*domain.Plan, error)
}

// TimeSlotRepository интерфейс репозитория временных слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, libraryID, id int64) (*domain.TimeSlot, error)
}

// LockerRepository интерфейс репозитория шкафчиков
type LockerRepository interface {
	GetByID(ctx context.Context, libraryID, id int64) (*domain.Locker, error)
}

// PromotionRepository интерфейс репозитория правил пакетов и предложений
type PromotionRepository interface {
	GetPackageRules(ctx context.Context, libraryID, planID int64) ([]*domain.PackageRule, error)
	GetOffersByCode(ctx context.Context, libraryID int64, code string) ([]*domain.Offer, error)
}

// StudentDirectoryClient интерфейс клиента справочника студентов
type StudentDirectoryClient interface {
	GetStudent(ctx context.Context, libraryID, studentID int64) (*studentdirectory.Student, error)
}

// Metrics интерфейс метрик расчёта цены
type Metrics interface {
	IncPricingQuote(result string)
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
