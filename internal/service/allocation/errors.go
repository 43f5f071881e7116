package allocation

import "errors"

var (
	// ErrSeatUnavailable место нельзя выдать на запрошенный период
	ErrSeatUnavailable = errors.New("allocation: seat unavailable")

	// ErrPlanMismatch режим места не подходит под тип плана
	ErrPlanMismatch = errors.New("allocation: seat mode does not match plan")

	// ErrLockerCapacityExceeded все шкафчики заняты на запрошенный период
	ErrLockerCapacityExceeded = errors.New("allocation: locker capacity exceeded")

	// ErrInvalidRequest некорректные входные данные движка
	ErrInvalidRequest = errors.New("allocation: invalid request")
)
