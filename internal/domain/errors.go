package domain

import "errors"

var (
	ErrInvalidDateRange        = errors.New("domain: invalid date range")
	ErrInvalidSlotPool         = errors.New("domain: invalid slot pool")
	ErrInvalidTimeSlot         = errors.New("domain: invalid time slot")
	ErrInvalidPlan             = errors.New("domain: invalid plan")
	ErrInvalidSeat             = errors.New("domain: invalid seat")
	ErrInvalidOffer            = errors.New("domain: invalid offer")
	ErrInvalidPackageRule      = errors.New("domain: invalid package rule")
	ErrInvalidStatus           = errors.New("domain: invalid booking status")
	ErrInvalidStatusTransition = errors.New("domain: invalid booking status transition")
)
