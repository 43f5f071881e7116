package configure_seats

import "errors"

var (
	// ErrInvalidSeatRange возвращается, когда строку номеров мест не удалось разобрать
	ErrInvalidSeatRange = errors.New("configure_seats: invalid seat range")

	// ErrTooManySeats возвращается, когда за раз запрошено больше domain.MaxSeatsPerBulkCreate мест
	ErrTooManySeats = errors.New("configure_seats: too many seats in one request")

	// ErrPlanNotFound возвращается, когда план из allow-list не найден в библиотеке
	ErrPlanNotFound = errors.New("configure_seats: plan not found")

	// ErrPlanMismatch возвращается, когда в allow-list SPECIAL места указан FLOAT план
	ErrPlanMismatch = errors.New("configure_seats: special seats serve fixed plans only")

	// ErrLockerNotFound возвращается, когда шкафчик не найден в библиотеке
	ErrLockerNotFound = errors.New("configure_seats: locker not found")

	// ErrSeatNumbersTaken возвращается, когда номера заняла параллельная операция
	ErrSeatNumbersTaken = errors.New("configure_seats: seat numbers were taken concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("configure_seats: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("configure_seats: internal error")
)
