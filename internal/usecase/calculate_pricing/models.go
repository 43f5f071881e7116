package calculate_pricing

import (
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

// Request модель запроса на расчёт цены
type Request struct {
	LibraryID       int64
	PlanID          int64
	StudentID       *int64 // нужен для предложений newUsersOnly/oncePerUser
	MonthsRequested int    // 0 = domain.DefaultMonthsRequested
	LockerID        *int64
	OfferCode       string
}

// Response модель ответа с разбивкой цены
type Response struct {
	LibraryID int64                   `json:"libraryId"`
	PlanID    int64                   `json:"planId"`
	LockerID  *int64                  `json:"lockerId,omitempty"`
	Pricing   domain.PricingBreakdown `json:"pricing"`
}

// QuoteParams уже загруженные данные для расчёта. Используется и при создании бронирования.
type QuoteParams struct {
	Plan            *domain.Plan
	TimeSlot        *domain.TimeSlot
	Locker          *domain.Locker
	MonthsRequested int
	OfferCode       string
	StudentID       *int64
	Now             time.Time
}
