package create_booking

import "errors"

var (
	// ErrPlanNotFound возвращается, когда план не найден в библиотеке
	ErrPlanNotFound = errors.New("create_booking: plan not found")

	// ErrBookingNotFound возвращается, когда продлеваемое бронирование не найдено
	ErrBookingNotFound = errors.New("create_booking: booking to upgrade not found")

	// ErrInvalidUpgrade возвращается, когда продлевать можно только ACTIVE бронирование этого студента в этой библиотеке
	ErrInvalidUpgrade = errors.New("create_booking: booking cannot be upgraded")

	// ErrInvalidDateRange возвращается при некорректном периоде бронирования
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrSeatUnavailable возвращается, когда выбранное место занято или не существует
	ErrSeatUnavailable = errors.New("create_booking: seat unavailable")

	// ErrPlanMismatch возвращается, когда место не подходит под план или для FIXED плана не выбрано место
	ErrPlanMismatch = errors.New("create_booking: plan mismatch")

	// ErrLockerNotFound возвращается, когда шкафчик не найден в библиотеке
	ErrLockerNotFound = errors.New("create_booking: locker not found")

	// ErrLockerCapacityExceeded возвращается, когда все шкафчики заняты на период
	ErrLockerCapacityExceeded = errors.New("create_booking: locker capacity exceeded")

	// ErrInvalidCoupon возвращается, когда по коду нет действующего предложения
	ErrInvalidCoupon = errors.New("create_booking: invalid coupon")

	// ErrOfferNotApplicable возвращается, когда предложение студенту не положено
	ErrOfferNotApplicable = errors.New("create_booking: offer not applicable")

	// ErrAuthorizationRequired возвращается, когда немедленная активация запрошена без библиотекаря
	ErrAuthorizationRequired = errors.New("create_booking: librarian authorization required")

	// ErrConcurrencyConflict возвращается, когда гонка проиграна и повтор не помог
	ErrConcurrencyConflict = errors.New("create_booking: concurrency conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
