package domain

import "github.com/shopspring/decimal"

// PricingBreakdown itemized price of a subscription.
// Every monetary component is rounded to whole units once, Total is the sum of rounded parts.
type PricingBreakdown struct {
	MonthlyFee         decimal.Decimal `json:"monthlyFee"`
	MonthsRequested    int             `json:"monthsRequested"`
	BaseTotal          decimal.Decimal `json:"baseTotal"`
	LockerPrice        decimal.Decimal `json:"lockerPrice"`
	PackageDiscountPct int             `json:"packageDiscountPct"`
	PackageDiscountAmt decimal.Decimal `json:"packageDiscountAmt"`
	OfferApplied       *OfferApplied   `json:"offerApplied"`
	Taxes              decimal.Decimal `json:"taxes"`
	Total              decimal.Decimal `json:"total"`
}

// OfferApplied offer that contributed a discount
type OfferApplied struct {
	OfferID  int64           `json:"offerId"`
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

// OfferDiscount returns the applied offer discount or zero
func (p *PricingBreakdown) OfferDiscount() decimal.Decimal {
	if p.OfferApplied == nil {
		return decimal.Zero
	}
	return p.OfferApplied.Discount
}
