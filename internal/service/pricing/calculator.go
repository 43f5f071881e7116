// Package pricing считает стоимость подписки. Calculate - чистая функция:
// все данные (правила пакетов, предложения, история студента) передаёт вызывающий.
package pricing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// StudentContext история студента, которую поставляет внешний справочник
type StudentContext struct {
	IsNewUser    bool
	UsedOfferIDs []int64
}

// HasUsedOffer возвращает true, если студент уже применял предложение
func (s *StudentContext) HasUsedOffer(offerID int64) bool {
	for _, id := range s.UsedOfferIDs {
		if id == offerID {
			return true
		}
	}
	return false
}

// Input входные данные расчёта
type Input struct {
	Plan *domain.Plan
	// TimeSlot слот FIXED плана, из него берутся пулы для сопоставления с предложениями
	TimeSlot        *domain.TimeSlot
	MonthsRequested int // 0 = domain.DefaultMonthsRequested
	Locker          *domain.Locker

	// PackageRules правила пакетов плана
	PackageRules []*domain.PackageRule

	OfferCode string
	// Offers предложения библиотеки с кодом OfferCode
	Offers []*domain.Offer

	// Student нужен только для предложений newUsersOnly/oncePerUser
	Student *StudentContext

	Now time.Time
}

// Calculate считает разбивку цены:
//
//	baseTotal = monthlyFee * months
//	packageDiscountAmt = round(baseTotal * rule.percentOff / 100)
//	offerDiscount = round((baseTotal - packageDiscountAmt) * pct / 100), либо flatAmount, не больше maxDiscount
//	total = baseTotal - packageDiscountAmt + lockerPrice - offerDiscount + taxes, не меньше 0
//
// Каждая денежная компонента округляется до целых один раз, total складывается из округлённых.
func Calculate(in Input) (*domain.PricingBreakdown, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	months := in.MonthsRequested
	monthlyFee := in.Plan.Price
	baseTotal := monthlyFee.Mul(decimal.NewFromInt(int64(months))).Round(0)

	packagePct := 0
	packageAmt := decimal.Zero
	if rule := matchPackageRule(in.PackageRules, in.Plan.ID, months); rule != nil {
		packagePct = rule.PercentOff
		packageAmt = percentOf(baseTotal, packagePct)
	}

	lockerPrice := decimal.Zero
	if in.Locker != nil {
		lockerPrice = in.Locker.Price.Round(0)
	}

	var applied *domain.OfferApplied
	code := strings.TrimSpace(in.OfferCode)
	if code != "" {
		offer, err := resolveOffer(in, code)
		if err != nil {
			return nil, err
		}
		applied = &domain.OfferApplied{
			OfferID:  offer.ID,
			Code:     strings.TrimSpace(*offer.CouponCode),
			Discount: offerDiscount(offer, baseTotal.Sub(packageAmt)),
		}
	}

	taxes := decimal.Zero

	total := baseTotal.Sub(packageAmt).Add(lockerPrice).Add(taxes)
	if applied != nil {
		total = total.Sub(applied.Discount)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}

	return &domain.PricingBreakdown{
		MonthlyFee:         monthlyFee,
		MonthsRequested:    months,
		BaseTotal:          baseTotal,
		LockerPrice:        lockerPrice,
		PackageDiscountPct: packagePct,
		PackageDiscountAmt: packageAmt,
		OfferApplied:       applied,
		Taxes:              taxes,
		Total:              total,
	}, nil
}

func validateInput(in *Input) error {
	if in.Plan == nil {
		return fmt.Errorf("%w: plan is required", ErrInvalidInput)
	}
	if in.Plan.Price.IsNegative() {
		return fmt.Errorf("%w: plan id=%d has a negative price", ErrInvalidInput, in.Plan.ID)
	}
	if in.MonthsRequested == 0 {
		in.MonthsRequested = domain.DefaultMonthsRequested
	}
	if in.MonthsRequested < 1 || in.MonthsRequested > domain.MaxMonthsRequested {
		return fmt.Errorf("%w: months requested must be between 1 and %d", ErrInvalidInput, domain.MaxMonthsRequested)
	}
	if in.Locker != nil {
		if in.Locker.LibraryID != in.Plan.LibraryID {
			return fmt.Errorf("%w: locker id=%d belongs to another library", ErrInvalidInput, in.Locker.ID)
		}
		if in.Locker.Price.IsNegative() {
			return fmt.Errorf("%w: locker id=%d has a negative price", ErrInvalidInput, in.Locker.ID)
		}
	}
	return nil
}

// matchPackageRule ищет правило с точным совпадением месяцев, при нескольких берёт меньший ID
func matchPackageRule(rules []*domain.PackageRule, planID int64, months int) *domain.PackageRule {
	var match *domain.PackageRule
	for _, rule := range rules {
		if rule.PlanID != planID || rule.Months != months {
			continue
		}
		if match == nil || rule.ID < match.ID {
			match = rule
		}
	}
	return match
}

// resolveOffer выбирает предложение по коду. Неизвестный код, истёкший срок,
// чужой план или непересекающиеся пулы дают ErrInvalidCoupon; ограничения по
// истории студента дают ErrOfferNotApplicable.
func resolveOffer(in Input, code string) (*domain.Offer, error) {
	pools := in.Plan.ApplicablePools(in.TimeSlot)

	candidates := make([]*domain.Offer, 0, len(in.Offers))
	for _, offer := range in.Offers {
		if offer.LibraryID != in.Plan.LibraryID || !offer.MatchesCode(code) {
			continue
		}
		if !offer.IsActiveAt(in.Now) || !offer.AppliesToPlan(in.Plan.ID) || !offer.SlotPools.Intersects(pools) {
			continue
		}
		candidates = append(candidates, offer)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: code %q", ErrInvalidCoupon, code)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	offer := candidates[0]

	if offer.NeedsStudentHistory() && in.Student == nil {
		return nil, fmt.Errorf("%w: offer id=%d requires student history", ErrOfferNotApplicable, offer.ID)
	}
	if offer.NewUsersOnly && !in.Student.IsNewUser {
		return nil, fmt.Errorf("%w: offer id=%d is for new users only", ErrOfferNotApplicable, offer.ID)
	}
	if offer.OncePerUser && in.Student.HasUsedOffer(offer.ID) {
		return nil, fmt.Errorf("%w: offer id=%d was already used", ErrOfferNotApplicable, offer.ID)
	}

	return offer, nil
}

func offerDiscount(offer *domain.Offer, base decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if offer.IsPercentage() {
		discount = percentOf(base, *offer.DiscountPct)
	} else {
		discount = offer.FlatAmount.Round(0)
	}

	if offer.MaxDiscount != nil && discount.GreaterThan(*offer.MaxDiscount) {
		discount = offer.MaxDiscount.Floor()
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount
}

func percentOf(amount decimal.Decimal, pct int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(0)
}
