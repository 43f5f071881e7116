package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Overlaps(t *testing.T) {
	jan := DateRange{From: date(2025, 1, 1), To: date(2025, 2, 1)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"back to back after", DateRange{From: date(2025, 2, 1), To: date(2025, 3, 1)}, false},
		{"back to back before", DateRange{From: date(2024, 12, 1), To: date(2025, 1, 1)}, false},
		{"partial overlap", DateRange{From: date(2025, 1, 15), To: date(2025, 2, 15)}, true},
		{"inside", DateRange{From: date(2025, 1, 10), To: date(2025, 1, 11)}, true},
		{"covering", DateRange{From: date(2024, 12, 1), To: date(2025, 3, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jan.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(jan))
		})
	}
}

func TestDateRange_Validate(t *testing.T) {
	assert.NoError(t, DateRange{From: date(2025, 1, 1), To: date(2025, 1, 2)}.Validate())
	assert.ErrorIs(t, DateRange{From: date(2025, 1, 2), To: date(2025, 1, 2)}.Validate(), ErrInvalidDateRange)
	assert.ErrorIs(t, DateRange{From: date(2025, 1, 3), To: date(2025, 1, 2)}.Validate(), ErrInvalidDateRange)
	assert.ErrorIs(t, DateRange{To: date(2025, 1, 2)}.Validate(), ErrInvalidDateRange)
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, date(2025, 2, 15), AddMonths(date(2025, 1, 15), 1))
	assert.Equal(t, date(2025, 2, 28), AddMonths(date(2025, 1, 31), 1))
	assert.Equal(t, date(2024, 2, 29), AddMonths(date(2024, 1, 31), 1))
	assert.Equal(t, date(2026, 1, 31), AddMonths(date(2025, 1, 31), 12))
	assert.Equal(t, date(2025, 4, 30), AddMonths(date(2024, 12, 31), 4))
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusActive))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusActive.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusActive.CanTransitionTo(StatusCancelled))

	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusActive))
}

func TestBooking_DueTransition(t *testing.T) {
	b := &Booking{Status: StatusPending, ValidFrom: date(2025, 1, 1), ValidTo: date(2025, 2, 1)}

	_, due := b.DueTransition(date(2024, 12, 31))
	assert.False(t, due)

	next, due := b.DueTransition(date(2025, 1, 1))
	assert.True(t, due)
	assert.Equal(t, StatusActive, next)

	b.Status = StatusActive
	_, due = b.DueTransition(date(2025, 1, 31))
	assert.False(t, due)

	next, due = b.DueTransition(date(2025, 2, 1))
	assert.True(t, due)
	assert.Equal(t, StatusCompleted, next)
}
