package calculate_pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	calculatePricing "github.com/m04kA/SMC-SeatBookingService/internal/usecase/calculate_pricing"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *calculatePricing.Request) (*calculatePricing.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*calculatePricing.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func post(uc *mockUseCase, url, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/libraries/{libraryId}/pricing/quote", NewHandler(uc, nopLogger{}).Handle).
		Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, strings.NewReader(body)))
	return rec
}

func TestHandler_Quoted(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *calculatePricing.Request) bool {
		return r.LibraryID == 3 && r.PlanID == 1 && r.MonthsRequested == 3 &&
			r.StudentID != nil && *r.StudentID == 11 &&
			r.LockerID != nil && *r.LockerID == 2 && r.OfferCode == "WINTER"
	})).Return(&calculatePricing.Response{
		LibraryID: 3,
		PlanID:    1,
		Pricing:   domain.PricingBreakdown{MonthsRequested: 3, Total: decimal.NewFromInt(2850)},
	}, nil)

	rec := post(uc, "/api/v1/libraries/3/pricing/quote",
		`{"planId":1,"studentId":11,"monthsRequested":3,"lockerId":2,"offerCode":"WINTER"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":"2850"`)
	uc.AssertExpectations(t)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
		body string
	}{
		{name: "library id", url: "/api/v1/libraries/abc/pricing/quote", body: `{"planId":1}`},
		{name: "malformed json", url: "/api/v1/libraries/3/pricing/quote", body: `{"planId":`},
		{name: "unknown field", url: "/api/v1/libraries/3/pricing/quote", body: `{"planId":1,"discount":50}`},
		{name: "two objects", url: "/api/v1/libraries/3/pricing/quote", body: `{"planId":1}{"planId":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)

			rec := post(uc, tt.url, tt.body)

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
		{err: calculatePricing.ErrInvalidCoupon, want: http.StatusUnprocessableEntity},
		{err: calculatePricing.ErrOfferNotApplicable, want: http.StatusUnprocessableEntity},
		{err: calculatePricing.ErrPlanNotFound, want: http.StatusNotFound},
		{err: calculatePricing.ErrLockerNotFound, want: http.StatusNotFound},
		{err: calculatePricing.ErrInvalidInput, want: http.StatusBadRequest},
		{err: calculatePricing.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))

			rec := post(uc, "/api/v1/libraries/3/pricing/quote", `{"planId":1,"monthsRequested":1,"offerCode":"WINTER"}`)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
