package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusActive    BookingStatus = "ACTIVE"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus converts a raw status
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo checks the lifecycle PENDING -> ACTIVE -> COMPLETED,
// with CANCELLED reachable from PENDING or ACTIVE
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// IsOccupying returns true for statuses that hold a seat or locker
func (s BookingStatus) IsOccupying() bool {
	return s == StatusPending || s == StatusActive
}

// Booking represents a seat subscription of a student
type Booking struct {
	ID        int64
	Reference uuid.UUID
	StudentID int64
	LibraryID int64
	PlanID    int64
	SeatID    *int64
	LockerID  *int64
	ValidFrom time.Time
	ValidTo   time.Time
	Status    BookingStatus

	// Price locked at booking time, never recomputed
	TotalAmount decimal.Decimal

	// Denormalized plan data for occupancy checks
	PlanType  PlanType
	SlotPools SlotPools

	OfferID        *int64
	UpgradedFromID *int64
	CreatedBy      *int64 // librarian who authorized the booking
	Notes          *string

	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking period
func (b *Booking) Range() DateRange {
	return DateRange{From: b.ValidFrom, To: b.ValidTo}
}

// IsOccupying returns true if the booking holds its seat or locker
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// DueTransition returns the status an external scheduler should move the booking to at now.
// PENDING becomes ACTIVE once ValidFrom is reached, ACTIVE becomes COMPLETED once ValidTo passes.
func (b *Booking) DueTransition(now time.Time) (BookingStatus, bool) {
	switch b.Status {
	case StatusPending:
		if !now.Before(b.ValidFrom) {
			return StatusActive, true
		}
	case StatusActive:
		if !now.Before(b.ValidTo) {
			return StatusCompleted, true
		}
	}
	return "", false
}

// BookingsFilter фильтр для получения бронирований библиотеки
type BookingsFilter struct {
	LibraryID       int64          // Обязательный параметр
	StudentID       *int64         // Фильтр по студенту
	SeatID          *int64         // Фильтр по месту
	Status          *BookingStatus // Фильтр по статусу
	From            *time.Time     // Бронирования, пересекающиеся с [From, To)
	To              *time.Time
	IncludeInactive bool // Включать ли завершённые и отменённые
}

// OverlapFilter selects occupying bookings that overlap Range.
// SeatID and LockerID narrow the search; PlanType selects float bookings.
type OverlapFilter struct {
	LibraryID        int64
	Range            DateRange
	SeatID           *int64
	LockerID         *int64
	PlanType         *PlanType
	ExcludeBookingID *int64
}
