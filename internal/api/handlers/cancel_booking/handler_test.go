package cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SeatBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patch(svc *mockService, url, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.LibrarianAuth)
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, url, strings.NewReader(body))
	req.Header.Set(middleware.HeaderLibrarianID, "77")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, int64(42), &models.CancelBookingRequest{
		LibrarianID:        77,
		CancellationReason: "переезд",
	}).Return(&models.BookingResponse{ID: 42, Status: "CANCELLED"}, nil)

	rec := patch(svc, "/api/v1/bookings/42/cancel", `{"cancellationReason":"переезд"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"CANCELLED"`)
	svc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "already closed", err: bookings.ErrCannotCancel, want: http.StatusBadRequest},
		{name: "invalid input", err: bookings.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Cancel", mock.Anything, int64(42), mock.Anything).Return(nil, tt.err)

			rec := patch(svc, "/api/v1/bookings/42/cancel", `{}`)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_InvalidID(t *testing.T) {
	svc := new(mockService)

	rec := patch(svc, "/api/v1/bookings/0/cancel", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
