package calculate_pricing

import "errors"

var (
	// ErrPlanNotFound возвращается, когда план не найден в библиотеке
	ErrPlanNotFound = errors.New("calculate_pricing: plan not found")

	// ErrLockerNotFound возвращается, когда шкафчик не найден в библиотеке
	ErrLockerNotFound = errors.New("calculate_pricing: locker not found")

	// ErrInvalidCoupon возвращается, когда по коду нет действующего предложения
	ErrInvalidCoupon = errors.New("calculate_pricing: invalid coupon")

	// ErrOfferNotApplicable возвращается, когда предложение студенту не положено
	ErrOfferNotApplicable = errors.New("calculate_pricing: offer not applicable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calculate_pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_pricing: internal error")
)
