package domain

import "time"

// SeatMode represents how a physical seat is allocated
type SeatMode string

const (
	SeatModeFixed   SeatMode = "FIXED"
	SeatModeFloat   SeatMode = "FLOAT"
	SeatModeSpecial SeatMode = "SPECIAL"
)

// IsValid returns true for known seat modes
func (m SeatMode) IsValid() bool {
	switch m {
	case SeatModeFixed, SeatModeFloat, SeatModeSpecial:
		return true
	default:
		return false
	}
}

// Seat represents a physical seat in a library
type Seat struct {
	ID         int64
	LibraryID  int64
	SeatNumber int
	Mode       SeatMode
	IsActive   bool

	// AllowedPlanIDs is the allow-list of a SPECIAL seat
	AllowedPlanIDs []int64

	LockerAutoInclude bool
	LockerID          *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsPlan reports whether the plan is in the seat's allow-list
func (s *Seat) AllowsPlan(planID int64) bool {
	for _, id := range s.AllowedPlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}

// BindsOneBooking returns true for seats that hold at most one booking per window
func (s *Seat) BindsOneBooking() bool {
	return s.Mode == SeatModeFixed || s.Mode == SeatModeSpecial
}
