package domain

import (
	"fmt"
	"time"
)

// DateRange is a half-open interval [From, To)
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a validated range
func NewDateRange(from, to time.Time) (DateRange, error) {
	r := DateRange{From: from, To: to}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// MonthsRange returns [from, from + months calendar months)
func MonthsRange(from time.Time, months int) DateRange {
	return DateRange{From: from, To: AddMonths(from, months)}
}

// Validate requires From < To
func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return fmt.Errorf("%w: both bounds are required", ErrInvalidDateRange)
	}
	if !r.From.Before(r.To) {
		return fmt.Errorf("%w: %s is not before %s", ErrInvalidDateRange,
			r.From.Format(DateFormat), r.To.Format(DateFormat))
	}
	return nil
}

// Overlaps reports whether two half-open ranges share any instant.
// Back-to-back ranges (r.To == other.From) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.From.Before(other.To) && other.From.Before(r.To)
}

// Contains reports whether t falls into [From, To)
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// String formats the range for logs and cache keys
func (r DateRange) String() string {
	return r.From.Format(DateFormat) + ".." + r.To.Format(DateFormat)
}

// AddMonths adds calendar months keeping the day of month where possible and
// clamping to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// StartOfDay truncates t to midnight in UTC
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
