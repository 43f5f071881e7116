package pricing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/pkg/ptr"
)

const libraryID = int64(3)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, dec(want).String(), got.String())
}

func plan() *domain.Plan {
	return &domain.Plan{
		ID: 1, LibraryID: libraryID, PlanType: domain.PlanTypeFloat, Hours: 8,
		Price: dec(2000), SlotPools: domain.SlotPools{domain.SlotPoolMorning},
	}
}

func percentOffer(pct int, maxDiscount *decimal.Decimal) *domain.Offer {
	return &domain.Offer{
		ID: 10, LibraryID: libraryID, Title: "Winter", CouponCode: ptr.Ptr("WINTER"),
		DiscountPct: ptr.Ptr(pct), MaxDiscount: maxDiscount,
		ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(0, 1, 0),
		PlanIDs: []int64{1}, SlotPools: domain.SlotPools{domain.SlotPoolMorning},
	}
}

// Plan price 2000, one month, nothing else.
func TestCalculate_ScenarioA(t *testing.T) {
	got, err := Calculate(Input{Plan: plan(), Now: now})
	require.NoError(t, err)

	assert.Equal(t, 1, got.MonthsRequested)
	assertAmount(t, 2000, got.Total)
	assertAmount(t, 0, got.PackageDiscountAmt)
	assert.Nil(t, got.OfferApplied)
}

// Twelve months with a 10% package rule.
func TestCalculate_ScenarioB(t *testing.T) {
	rules := []*domain.PackageRule{
		{ID: 1, LibraryID: libraryID, PlanID: 1, Months: 6, PercentOff: 5},
		{ID: 2, LibraryID: libraryID, PlanID: 1, Months: 12, PercentOff: 10},
	}

	got, err := Calculate(Input{Plan: plan(), MonthsRequested: 12, PackageRules: rules, Now: now})
	require.NoError(t, err)

	assertAmount(t, 24000, got.BaseTotal)
	assert.Equal(t, 10, got.PackageDiscountPct)
	assertAmount(t, 2400, got.PackageDiscountAmt)
	assertAmount(t, 21600, got.Total)
}

// 20% offer capped at 300.
func TestCalculate_ScenarioC(t *testing.T) {
	got, err := Calculate(Input{
		Plan: plan(), OfferCode: "WINTER", Offers: []*domain.Offer{percentOffer(20, ptr.Ptr(dec(300)))}, Now: now,
	})
	require.NoError(t, err)

	require.NotNil(t, got.OfferApplied)
	assert.Equal(t, "WINTER", got.OfferApplied.Code)
	assertAmount(t, 300, got.OfferApplied.Discount)
	assertAmount(t, 1700, got.Total)
}

// Unknown code never degrades to a zero discount.
func TestCalculate_ScenarioE(t *testing.T) {
	got, err := Calculate(Input{Plan: plan(), OfferCode: "XYZ", Offers: nil, Now: now})

	assert.ErrorIs(t, err, ErrInvalidCoupon)
	assert.Nil(t, got)
}

func TestCalculate_OfferOnDiscountedBase(t *testing.T) {
	rules := []*domain.PackageRule{{ID: 1, LibraryID: libraryID, PlanID: 1, Months: 4, PercentOff: 15}}
	lockerPrice := decimal.RequireFromString("249.50")

	got, err := Calculate(Input{
		Plan: plan(), MonthsRequested: 4, PackageRules: rules,
		Locker:    &domain.Locker{ID: 2, LibraryID: libraryID, NumberOfLockers: 5, Price: lockerPrice},
		OfferCode: " winter ", Offers: []*domain.Offer{percentOffer(10, nil)}, Now: now,
	})
	require.NoError(t, err)

	// base 8000, package 1200, offer 10% of 6800 = 680, locker rounds to 250
	assertAmount(t, 8000, got.BaseTotal)
	assertAmount(t, 1200, got.PackageDiscountAmt)
	assertAmount(t, 680, got.OfferApplied.Discount)
	assertAmount(t, 250, got.LockerPrice)
	assertAmount(t, 0, got.Taxes)
	assertAmount(t, 6370, got.Total)
}

func TestCalculate_ComponentsRoundedOnce(t *testing.T) {
	p := plan()
	p.Price = decimal.RequireFromString("1333.33")
	rules := []*domain.PackageRule{{ID: 1, LibraryID: libraryID, PlanID: 1, Months: 1, PercentOff: 7}}

	got, err := Calculate(Input{
		Plan: p, PackageRules: rules, OfferCode: "WINTER", Offers: []*domain.Offer{percentOffer(3, nil)}, Now: now,
	})
	require.NoError(t, err)

	// base 1333, package 7% = 93.31 -> 93, offer 3% of 1240 = 37.2 -> 37
	assertAmount(t, 1333, got.BaseTotal)
	assertAmount(t, 93, got.PackageDiscountAmt)
	assertAmount(t, 37, got.OfferApplied.Discount)
	assertAmount(t, 1203, got.Total)
}

func TestCalculate_FlatOfferFloorsAtZero(t *testing.T) {
	offer := percentOffer(0, nil)
	offer.DiscountPct = nil
	offer.FlatAmount = ptr.Ptr(dec(5000))

	got, err := Calculate(Input{Plan: plan(), OfferCode: "WINTER", Offers: []*domain.Offer{offer}, Now: now})
	require.NoError(t, err)

	assertAmount(t, 5000, got.OfferApplied.Discount)
	assertAmount(t, 0, got.Total)
}

func TestCalculate_OfferRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *domain.Offer)
		student *StudentContext
		err     error
	}{
		{name: "expired", mutate: func(o *domain.Offer) { o.ValidTo = now.Add(-time.Minute) }, err: ErrInvalidCoupon},
		{name: "not started", mutate: func(o *domain.Offer) { o.ValidFrom = now.Add(time.Minute) }, err: ErrInvalidCoupon},
		{name: "other plan", mutate: func(o *domain.Offer) { o.PlanIDs = []int64{2} }, err: ErrInvalidCoupon},
		{name: "other pools", mutate: func(o *domain.Offer) { o.SlotPools = domain.SlotPools{domain.SlotPoolNight} }, err: ErrInvalidCoupon},
		{name: "other library", mutate: func(o *domain.Offer) { o.LibraryID = 99 }, err: ErrInvalidCoupon},
		{name: "new users without context", mutate: func(o *domain.Offer) { o.NewUsersOnly = true }, err: ErrOfferNotApplicable},
		{
			name:    "new users, returning student",
			mutate:  func(o *domain.Offer) { o.NewUsersOnly = true },
			student: &StudentContext{IsNewUser: false},
			err:     ErrOfferNotApplicable,
		},
		{
			name:    "once per user, already used",
			mutate:  func(o *domain.Offer) { o.OncePerUser = true },
			student: &StudentContext{IsNewUser: true, UsedOfferIDs: []int64{10}},
			err:     ErrOfferNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := percentOffer(20, nil)
			tt.mutate(offer)

			_, err := Calculate(Input{
				Plan: plan(), OfferCode: "WINTER", Offers: []*domain.Offer{offer}, Student: tt.student, Now: now,
			})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCalculate_BoundaryValidity(t *testing.T) {
	offer := percentOffer(20, nil)
	offer.ValidTo = now

	got, err := Calculate(Input{Plan: plan(), OfferCode: "WINTER", Offers: []*domain.Offer{offer}, Now: now})
	require.NoError(t, err)
	assertAmount(t, 400, got.OfferApplied.Discount)
}

func TestCalculate_FixedPlanUsesTimeSlotPools(t *testing.T) {
	p := &domain.Plan{ID: 1, LibraryID: libraryID, PlanType: domain.PlanTypeFixed, Price: dec(2000), TimeSlotID: ptr.Ptr(int64(4))}
	slot := &domain.TimeSlot{ID: 4, LibraryID: libraryID, StartTime: "06:00", EndTime: "12:00",
		SlotPools: domain.SlotPools{domain.SlotPoolMorning}}

	got, err := Calculate(Input{Plan: p, TimeSlot: slot, OfferCode: "WINTER",
		Offers: []*domain.Offer{percentOffer(10, nil)}, Now: now})
	require.NoError(t, err)
	assertAmount(t, 1800, got.Total)

	_, err = Calculate(Input{Plan: p, OfferCode: "WINTER", Offers: []*domain.Offer{percentOffer(10, nil)}, Now: now})
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCalculate_InvalidInput(t *testing.T) {
	_, err := Calculate(Input{Now: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Calculate(Input{Plan: plan(), MonthsRequested: -1, Now: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Calculate(Input{Plan: plan(), MonthsRequested: domain.MaxMonthsRequested + 1, Now: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Calculate(Input{Plan: plan(), Locker: &domain.Locker{ID: 1, LibraryID: 42}, Now: now})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculate_Monotonicity(t *testing.T) {
	prev := decimal.Zero
	for months := 1; months <= 12; months++ {
		got, err := Calculate(Input{Plan: plan(), MonthsRequested: months, Now: now})
		require.NoError(t, err)
		assert.True(t, got.Total.GreaterThanOrEqual(prev), "months=%d", months)
		prev = got.Total
	}

	rules := []*domain.PackageRule{{ID: 1, LibraryID: libraryID, PlanID: 1, Months: 6, PercentOff: 10}}
	withRule, err := Calculate(Input{Plan: plan(), MonthsRequested: 6, PackageRules: rules, Now: now})
	require.NoError(t, err)
	withoutRule, err := Calculate(Input{Plan: plan(), MonthsRequested: 6, Now: now})
	require.NoError(t, err)
	assert.True(t, withRule.Total.LessThan(withoutRule.Total))
}

func TestCalculate_DiscountCap(t *testing.T) {
	caps := []string{"0", "1", "99.6", "300", "1999", "5000"}
	for _, pct := range []int{1, 15, 50, 100} {
		for _, c := range caps {
			maxDiscount := decimal.RequireFromString(c)
			got, err := Calculate(Input{
				Plan: plan(), MonthsRequested: 3, OfferCode: "WINTER",
				Offers: []*domain.Offer{percentOffer(pct, &maxDiscount)}, Now: now,
			})
			require.NoError(t, err)
			assert.True(t, got.OfferApplied.Discount.LessThanOrEqual(maxDiscount), "pct=%d cap=%s", pct, c)
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	in := Input{
		Plan: plan(), MonthsRequested: 6,
		PackageRules: []*domain.PackageRule{{ID: 1, LibraryID: libraryID, PlanID: 1, Months: 6, PercentOff: 12}},
		Locker:       &domain.Locker{ID: 1, LibraryID: libraryID, NumberOfLockers: 1, Price: dec(300)},
		OfferCode:    "WINTER", Offers: []*domain.Offer{percentOffer(7, ptr.Ptr(dec(500)))}, Now: now,
	}

	first, err := Calculate(in)
	require.NoError(t, err)
	second, err := Calculate(in)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}
