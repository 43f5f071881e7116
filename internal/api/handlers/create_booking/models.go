package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SeatBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StudentID           int64   `json:"studentId"`
	LibraryID           int64   `json:"libraryId"`
	PlanID              int64   `json:"planId"`
	SeatID              *int64  `json:"seatId,omitempty"`
	LockerID            *int64  `json:"lockerId,omitempty"`
	StartDate           string  `json:"startDate,omitempty"` // "2025-03-01", по умолчанию сегодня
	MonthsRequested     int     `json:"monthsRequested,omitempty"`
	OfferCode           string  `json:"offerCode,omitempty"`
	UpgradeFromID       *int64  `json:"upgradeFromId,omitempty"`
	ActivateImmediately bool    `json:"activateImmediately,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// authorizedBy берётся из X-Librarian-ID, а не из тела.
func (r *CreateBookingRequest) ToUseCaseRequest(authorizedBy *int64) (*createBooking.Request, error) {
	var start time.Time
	if r.StartDate != "" {
		parsed, err := time.Parse(domain.DateFormat, r.StartDate)
		if err != nil {
			return nil, err
		}
		start = parsed
	}

	return &createBooking.Request{
		StudentID:           r.StudentID,
		LibraryID:           r.LibraryID,
		PlanID:              r.PlanID,
		SeatID:              r.SeatID,
		LockerID:            r.LockerID,
		StartDate:           start,
		MonthsRequested:     r.MonthsRequested,
		OfferCode:           r.OfferCode,
		UpgradeFromID:       r.UpgradeFromID,
		ActivateImmediately: r.ActivateImmediately,
		AuthorizedBy:        authorizedBy,
		Notes:               r.Notes,
	}, nil
}
