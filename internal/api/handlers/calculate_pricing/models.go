package calculate_pricing

import (
	calculatePricing "github.com/m04kA/SMC-SeatBookingService/internal/usecase/calculate_pricing"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	PlanID          int64  `json:"planId"`
	StudentID       *int64 `json:"studentId,omitempty"`
	MonthsRequested int    `json:"monthsRequested"`
	LockerID        *int64 `json:"lockerId,omitempty"`
	OfferCode       string `json:"offerCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(libraryID int64) *calculatePricing.Request {
	return &calculatePricing.Request{
		LibraryID:       libraryID,
		PlanID:          r.PlanID,
		StudentID:       r.StudentID,
		MonthsRequested: r.MonthsRequested,
		LockerID:        r.LockerID,
		OfferCode:       r.OfferCode,
	}
}
