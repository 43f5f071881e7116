package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func librarianEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := GetLibrarianID(r.Context()); ok {
			w.Header().Set("X-Seen-Librarian", strconv.FormatInt(id, 10))
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestLibrarianAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not a number", header: "abc", want: http.StatusUnauthorized},
		{name: "negative", header: "-4", want: http.StatusUnauthorized},
		{name: "ok", header: "77", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderLibrarianID, tt.header)
			}
			rec := httptest.NewRecorder()

			LibrarianAuth(librarianEcho()).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestOptionalLibrarian(t *testing.T) {
	rec := httptest.NewRecorder()
	OptionalLibrarian(librarianEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Seen-Librarian"))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(HeaderLibrarianID, "77")
	rec = httptest.NewRecorder()
	OptionalLibrarian(librarianEcho()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "77", rec.Header().Get("X-Seen-Librarian"))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(HeaderLibrarianID, "x")
	rec = httptest.NewRecorder()
	OptionalLibrarian(librarianEcho()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	clock := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return clock }

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := rl.Limit(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	// другой IP считается отдельно
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))

	clock = clock.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5003"))

	clock = clock.Add(visitorTTL + time.Second)
	rl.Cleanup()
	assert.Empty(t, rl.visitors)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	given := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, given)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, given, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", seen)
}
