package domain

// Booking defaults
const (
	DefaultMonthsRequested = 1
	MaxMonthsRequested     = 24
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxSeatsPerBulkCreate       = 1000
	MaxPercent                  = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CanonicalPackageMonths durations that package rules are normally defined for.
// Rules for other durations are accepted but never interpolated.
var CanonicalPackageMonths = []int{1, 4, 6, 12}

// OccupyingStatuses statuses of bookings that hold a seat or a locker
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusActive,
}

// InactiveStatuses statuses excluded from listings unless requested explicitly
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
