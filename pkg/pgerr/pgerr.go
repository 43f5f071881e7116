package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок postgres, означающие проигранную гонку между транзакциями
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeExclusionViolation   = "23P01"
	CodeUniqueViolation      = "23505"
)

// ErrConflict общий sentinel для конфликта конкурентных транзакций.
// Репозитории и менеджеры транзакций оборачивают им ошибки с кодами выше,
// usecase-ы проверяют через errors.Is.
var ErrConflict = errors.New("pg: concurrent transaction conflict")

// Code возвращает SQLSTATE ошибки pq или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsConflict возвращает true для ошибок сериализации, дедлоков и нарушений
// exclusion/unique ограничений, которые появляются при параллельной вставке
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConflict) {
		return true
	}
	switch Code(err) {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeExclusionViolation, CodeUniqueViolation:
		return true
	default:
		return false
	}
}
