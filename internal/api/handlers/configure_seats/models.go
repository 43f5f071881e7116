package configure_seats

import (
	configureSeats "github.com/m04kA/SMC-SeatBookingService/internal/usecase/configure_seats"
)

// ConfigureSeatsRequest HTTP request model
type ConfigureSeatsRequest struct {
	Seats             string  `json:"seats"` // "1-50, 55"
	Mode              string  `json:"mode"`
	AllowedPlanIDs    []int64 `json:"allowedPlanIds,omitempty"`
	LockerAutoInclude bool    `json:"lockerAutoInclude,omitempty"`
	LockerID          *int64  `json:"lockerId,omitempty"`
	Inactive          bool    `json:"inactive,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *ConfigureSeatsRequest) ToUseCaseRequest(libraryID, librarianID int64) *configureSeats.Request {
	return &configureSeats.Request{
		LibraryID:         libraryID,
		LibrarianID:       librarianID,
		Seats:             r.Seats,
		Mode:              r.Mode,
		AllowedPlanIDs:    r.AllowedPlanIDs,
		LockerAutoInclude: r.LockerAutoInclude,
		LockerID:          r.LockerID,
		Inactive:          r.Inactive,
	}
}
