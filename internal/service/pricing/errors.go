package pricing

import "errors"

var (
	// ErrInvalidCoupon код передан, но подходящего предложения нет
	ErrInvalidCoupon = errors.New("pricing: invalid coupon")

	// ErrOfferNotApplicable предложение найдено, но студенту не положено
	ErrOfferNotApplicable = errors.New("pricing: offer not applicable")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("pricing: invalid input")
)
