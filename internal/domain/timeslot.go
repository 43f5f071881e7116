package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/pkg/types"
)

// SlotPool is a coarse day-part label. Pools are supplied with the data,
// never derived from clock time.
type SlotPool string

const (
	SlotPoolMorning   SlotPool = "MORNING"
	SlotPoolAfternoon SlotPool = "AFTERNOON"
	SlotPoolEvening   SlotPool = "EVENING"
	SlotPoolNight     SlotPool = "NIGHT"
)

// IsValid returns true for the known pool labels
func (p SlotPool) IsValid() bool {
	switch p {
	case SlotPoolMorning, SlotPoolAfternoon, SlotPoolEvening, SlotPoolNight:
		return true
	default:
		return false
	}
}

// SlotPools is a set of pools kept as a slice for storage in a text[] column
type SlotPools []SlotPool

// ParseSlotPools converts raw labels, rejecting unknown ones and dropping duplicates
func ParseSlotPools(raw []string) (SlotPools, error) {
	pools := make(SlotPools, 0, len(raw))
	for _, r := range raw {
		p := SlotPool(r)
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlotPool, r)
		}
		if !pools.Contains(p) {
			pools = append(pools, p)
		}
	}
	return pools, nil
}

// Contains reports whether p is in the set
func (ps SlotPools) Contains(p SlotPool) bool {
	for _, existing := range ps {
		if existing == p {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one pool
func (ps SlotPools) Intersects(other SlotPools) bool {
	for _, p := range ps {
		if other.Contains(p) {
			return true
		}
	}
	return false
}

// Strings returns the raw labels (for pq.Array)
func (ps SlotPools) Strings() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

// TimeSlot is a named daily window of a library
type TimeSlot struct {
	ID        int64
	LibraryID int64
	Name      string
	StartTime types.TimeString
	EndTime   types.TimeString
	SlotPools SlotPools

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DailyHours is always derived from StartTime/EndTime; an end at or before the
// start wraps past midnight. Returns 0 for malformed times.
func (s *TimeSlot) DailyHours() float64 {
	hours, err := types.DurationHours(s.StartTime, s.EndTime)
	if err != nil {
		return 0
	}
	return hours
}

// IsZeroLength returns true when start and end coincide; such a slot is never
// eligible for allocation.
func (s *TimeSlot) IsZeroLength() bool {
	return s.StartTime.Equal(s.EndTime)
}

// Validate checks the slot before it is stored
func (s *TimeSlot) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTimeSlot)
	}
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidTimeSlot, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidTimeSlot, err)
	}
	if s.IsZeroLength() {
		return fmt.Errorf("%w: start time equals end time", ErrInvalidTimeSlot)
	}
	if len(s.SlotPools) == 0 {
		return fmt.Errorf("%w: at least one slot pool is required", ErrInvalidTimeSlot)
	}
	for _, p := range s.SlotPools {
		if !p.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidSlotPool, p)
		}
	}
	return nil
}
