package seats

import "errors"

var (
	// ErrMarshal возвращается при ошибке сериализации списка мест
	ErrMarshal = errors.New("seats.cache: failed to marshal value")

	// ErrUnmarshal возвращается, когда в кэше лежит повреждённое значение
	ErrUnmarshal = errors.New("seats.cache: failed to unmarshal value")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("seats.cache: redis error")
)
