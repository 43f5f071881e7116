package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/handlers"
)

// HeaderLibrarianID заголовок, который ставит внешний шлюз после проверки PIN библиотекаря
const HeaderLibrarianID = "X-Librarian-ID"

const (
	msgMissingLibrarian = "требуется авторизация библиотекаря"
	msgInvalidLibrarian = "некорректный ID библиотекаря"
)

type contextKey string

const librarianIDKey contextKey = "librarian_id"

// LibrarianAuth пропускает только запросы с корректным X-Librarian-ID
func LibrarianAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderLibrarianID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingLibrarian)
			return
		}

		id, ok := parseLibrarianID(raw)
		if !ok {
			handlers.RespondUnauthorized(w, msgInvalidLibrarian)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithLibrarianID(r.Context(), id)))
	})
}

// OptionalLibrarian кладёт X-Librarian-ID в контекст, если он передан.
// Студенческие запросы проходят без него, некорректное значение отклоняется.
func OptionalLibrarian(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderLibrarianID)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := parseLibrarianID(raw)
		if !ok {
			handlers.RespondUnauthorized(w, msgInvalidLibrarian)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithLibrarianID(r.Context(), id)))
	})
}

// WithLibrarianID возвращает контекст с ID библиотекаря
func WithLibrarianID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, librarianIDKey, id)
}

// GetLibrarianID извлекает ID библиотекаря из контекста
func GetLibrarianID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(librarianIDKey).(int64)
	return id, ok
}

func parseLibrarianID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
