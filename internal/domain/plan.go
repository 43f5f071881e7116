package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PlanType decides how a plan is matched to seats
type PlanType string

const (
	PlanTypeFixed PlanType = "FIXED"
	PlanTypeFloat PlanType = "FLOAT"
)

// Plan is a monthly subscription offered by a library.
// A FIXED plan is bound to one TimeSlot, a FLOAT plan to a set of slot pools.
type Plan struct {
	ID          int64
	LibraryID   int64
	PlanType    PlanType
	Hours       float64
	Price       decimal.Decimal // monthly fee
	TimeSlotID  *int64
	SlotPools   SlotPools
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFixed returns true for plans bound to a specific seat and time slot
func (p *Plan) IsFixed() bool {
	return p.PlanType == PlanTypeFixed
}

// IsFloat returns true for capacity-pool plans
func (p *Plan) IsFloat() bool {
	return p.PlanType == PlanTypeFloat
}

// ApplicablePools returns the pools used for offer targeting and float matching.
// Fixed plans take them from their time slot.
func (p *Plan) ApplicablePools(slot *TimeSlot) SlotPools {
	if p.IsFloat() {
		return p.SlotPools
	}
	if slot == nil {
		return nil
	}
	return slot.SlotPools
}

// Validate enforces that exactly one of TimeSlotID/SlotPools is set, driven by PlanType
func (p *Plan) Validate() error {
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidPlan)
	}

	switch p.PlanType {
	case PlanTypeFixed:
		if p.TimeSlotID == nil {
			return fmt.Errorf("%w: fixed plan requires a time slot", ErrInvalidPlan)
		}
		if len(p.SlotPools) > 0 {
			return fmt.Errorf("%w: fixed plan must not carry slot pools", ErrInvalidPlan)
		}
	case PlanTypeFloat:
		if p.TimeSlotID != nil {
			return fmt.Errorf("%w: float plan must not reference a time slot", ErrInvalidPlan)
		}
		if len(p.SlotPools) == 0 {
			return fmt.Errorf("%w: float plan requires slot pools", ErrInvalidPlan)
		}
		for _, pool := range p.SlotPools {
			if !pool.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidSlotPool, pool)
			}
		}
	default:
		return fmt.Errorf("%w: unknown plan type %q", ErrInvalidPlan, p.PlanType)
	}

	return nil
}
