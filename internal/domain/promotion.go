package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PackageRule is a discount for committing to a fixed number of months of a plan
type PackageRule struct {
	ID         int64
	LibraryID  int64
	PlanID     int64
	Months     int
	PercentOff int // 0-100

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the rule before it is stored
func (r *PackageRule) Validate() error {
	if r.Months < 1 || r.Months > MaxMonthsRequested {
		return fmt.Errorf("%w: months must be between 1 and %d", ErrInvalidPackageRule, MaxMonthsRequested)
	}
	if r.PercentOff < 0 || r.PercentOff > MaxPercent {
		return fmt.Errorf("%w: percent off must be between 0 and %d", ErrInvalidPackageRule, MaxPercent)
	}
	return nil
}

// Offer is a time-bounded promotional discount, optionally gated by a coupon code.
// Exactly one of DiscountPct/FlatAmount is set.
type Offer struct {
	ID          int64
	LibraryID   int64
	Title       string
	CouponCode  *string
	DiscountPct *int
	FlatAmount  *decimal.Decimal
	MaxDiscount *decimal.Decimal
	ValidFrom   time.Time
	ValidTo     time.Time
	PlanIDs     []int64
	SlotPools   SlotPools

	NewUsersOnly bool
	OncePerUser  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPercentage returns true for percentage based offers
func (o *Offer) IsPercentage() bool {
	return o.DiscountPct != nil
}

// IsActiveAt checks ValidFrom <= now <= ValidTo (both bounds inclusive)
func (o *Offer) IsActiveAt(now time.Time) bool {
	return !now.Before(o.ValidFrom) && !now.After(o.ValidTo)
}

// AppliesToPlan reports whether the plan is targeted by the offer
func (o *Offer) AppliesToPlan(planID int64) bool {
	for _, id := range o.PlanIDs {
		if id == planID {
			return true
		}
	}
	return false
}

// MatchesCode compares coupon codes ignoring case and surrounding spaces
func (o *Offer) MatchesCode(code string) bool {
	if o.CouponCode == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*o.CouponCode), strings.TrimSpace(code))
}

// NeedsStudentHistory returns true if applying the offer requires student context
func (o *Offer) NeedsStudentHistory() bool {
	return o.NewUsersOnly || o.OncePerUser
}

// Validate checks the offer invariants
func (o *Offer) Validate() error {
	if (o.DiscountPct == nil) == (o.FlatAmount == nil) {
		return fmt.Errorf("%w: exactly one of discount percent and flat amount must be set", ErrInvalidOffer)
	}
	if o.DiscountPct != nil && (*o.DiscountPct < 0 || *o.DiscountPct > MaxPercent) {
		return fmt.Errorf("%w: discount percent must be between 0 and %d", ErrInvalidOffer, MaxPercent)
	}
	if o.FlatAmount != nil && o.FlatAmount.IsNegative() {
		return fmt.Errorf("%w: flat amount must not be negative", ErrInvalidOffer)
	}
	if o.MaxDiscount != nil && o.MaxDiscount.IsNegative() {
		return fmt.Errorf("%w: max discount must not be negative", ErrInvalidOffer)
	}
	if o.ValidTo.Before(o.ValidFrom) {
		return fmt.Errorf("%w: valid to is before valid from", ErrInvalidOffer)
	}
	if len(o.PlanIDs) == 0 {
		return fmt.Errorf("%w: at least one plan is required", ErrInvalidOffer)
	}
	if len(o.SlotPools) == 0 {
		return fmt.Errorf("%w: at least one slot pool is required", ErrInvalidOffer)
	}
	return nil
}
