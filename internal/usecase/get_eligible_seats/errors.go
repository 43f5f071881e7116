package get_eligible_seats

import "errors"

var (
	// ErrPlanNotFound возвращается, когда план не найден в библиотеке
	ErrPlanNotFound = errors.New("get_eligible_seats: plan not found")

	// ErrTimeSlotNotFound возвращается, когда слот FIXED плана не найден
	ErrTimeSlotNotFound = errors.New("get_eligible_seats: time slot not found")

	// ErrInvalidDateRange возвращается, когда from не раньше to
	ErrInvalidDateRange = errors.New("get_eligible_seats: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_eligible_seats: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_eligible_seats: internal error")
)
