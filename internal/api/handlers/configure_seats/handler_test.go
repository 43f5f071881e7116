package configure_seats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/middleware"
	configureSeats "github.com/m04kA/SMC-SeatBookingService/internal/usecase/configure_seats"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *configureSeats.Request) (*configureSeats.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*configureSeats.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const bulkURL = "/api/v1/libraries/3/seats/bulk"

func newRouter(uc *mockUseCase, mw ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw...)
	r.HandleFunc("/api/v1/libraries/{libraryId}/seats/bulk", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)
	return r
}

func post(r http.Handler, url, body, librarian string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if librarian != "" {
		req.Header.Set(middleware.HeaderLibrarianID, librarian)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *configureSeats.Request) bool {
		return r.LibraryID == 3 && r.LibrarianID == 77 && r.Seats == "1-3, 7" &&
			r.Mode == "SPECIAL" && len(r.AllowedPlanIDs) == 1 && r.AllowedPlanIDs[0] == 1 &&
			r.LockerAutoInclude && r.LockerID != nil && *r.LockerID == 2 && !r.Inactive
	})).Return(&configureSeats.Response{
		LibraryID: 3,
		Created:   []configureSeats.SeatDTO{{ID: 10, SeatNumber: 1, Mode: "SPECIAL", IsActive: true}},
		Skipped:   []int{2, 3, 7},
	}, nil)

	rec := post(newRouter(uc, middleware.LibrarianAuth), bulkURL,
		`{"seats":"1-3, 7","mode":"SPECIAL","allowedPlanIds":[1],"lockerAutoInclude":true,"lockerId":2}`, "77")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skipped":[2,3,7]`)
	uc.AssertExpectations(t)
}

func TestHandler_LibrarianRequired(t *testing.T) {
	uc := new(mockUseCase)

	rec := post(newRouter(uc), bulkURL, `{"seats":"1-3","mode":"FLOAT"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
		body string
	}{
		{name: "library id", url: "/api/v1/libraries/nope/seats/bulk", body: `{"seats":"1"}`},
		{name: "malformed json", url: bulkURL, body: `{"seats":`},
		{name: "unknown field", url: bulkURL, body: `{"seats":"1","librarianId":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)

			rec := post(newRouter(uc, middleware.LibrarianAuth), tt.url, tt.body, "77")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: configureSeats.ErrInvalidSeatRange, want: http.StatusBadRequest},
		{err: configureSeats.ErrTooManySeats, want: http.StatusBadRequest},
		{err: configureSeats.ErrInvalidInput, want: http.StatusBadRequest},
		{err: configureSeats.ErrPlanNotFound, want: http.StatusNotFound},
		{err: configureSeats.ErrLockerNotFound, want: http.StatusNotFound},
		{err: configureSeats.ErrPlanMismatch, want: http.StatusUnprocessableEntity},
		{err: configureSeats.ErrSeatNumbersTaken, want: http.StatusConflict},
		{err: configureSeats.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))

			rec := post(newRouter(uc, middleware.LibrarianAuth), bulkURL, `{"seats":"1-3","mode":"FLOAT"}`, "77")

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
