package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Locker is a locker type of a library with a fixed number of units
type Locker struct {
	ID              int64
	LibraryID       int64
	LockerType      string
	NumberOfLockers int // capacity
	Price           decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacity reports whether one more booking fits next to occupied ones
func (l *Locker) HasCapacity(occupied int) bool {
	return occupied < l.NumberOfLockers
}
