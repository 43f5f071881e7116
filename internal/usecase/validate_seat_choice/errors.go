package validate_seat_choice

import "errors"

var (
	// ErrPlanNotFound возвращается, когда план не найден в библиотеке
	ErrPlanNotFound = errors.New("validate_seat_choice: plan not found")

	// ErrSeatUnavailable возвращается, когда место нельзя выдать на период
	ErrSeatUnavailable = errors.New("validate_seat_choice: seat unavailable")

	// ErrPlanMismatch возвращается, когда режим места не подходит под тип плана
	ErrPlanMismatch = errors.New("validate_seat_choice: seat mode does not match plan")

	// ErrInvalidDateRange возвращается, когда from не раньше to
	ErrInvalidDateRange = errors.New("validate_seat_choice: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_seat_choice: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_seat_choice: internal error")
)
