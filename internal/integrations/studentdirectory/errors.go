package studentdirectory

import "errors"

var (
	// ErrStudentNotFound возвращается, когда студент не зарегистрирован в библиотеке
	ErrStudentNotFound = errors.New("studentdirectory client: student not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("studentdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("studentdirectory client: invalid response")
)
