package validate_seat_choice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	planRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/plan"
	"github.com/m04kA/SMC-SeatBookingService/pkg/ptr"
)

type mockPlanRepo struct{ mock.Mock }

func (m *mockPlanRepo) GetByID(ctx context.Context, libraryID, id int64) (*domain.Plan, error) {
	args := m.Called(ctx, libraryID, id)
	p, _ := args.Get(0).(*domain.Plan)
	return p, args.Error(1)
}

type mockTimeSlotRepo struct{ mock.Mock }

func (m *mockTimeSlotRepo) GetByID(ctx context.Context, libraryID, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, libraryID, id)
	s, _ := args.Get(0).(*domain.TimeSlot)
	return s, args.Error(1)
}

type mockSeatRepo struct{ mock.Mock }

func (m *mockSeatRepo) GetByLibrary(ctx context.Context, libraryID int64) ([]*domain.Seat, error) {
	args := m.Called(ctx, libraryID)
	s, _ := args.Get(0).([]*domain.Seat)
	return s, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newUseCase(t *testing.T) *UseCase {
	t.Helper()

	plans := new(mockPlanRepo)
	plans.On("GetByID", mock.Anything, int64(3), int64(1)).Return(&domain.Plan{
		ID:         1,
		LibraryID:  3,
		PlanType:   domain.PlanTypeFixed,
		Price:      decimal.NewFromInt(2000),
		TimeSlotID: ptr.Ptr(int64(11)),
	}, nil)
	plans.On("GetByID", mock.Anything, int64(3), int64(99)).Return(nil, planRepo.ErrPlanNotFound)

	slots := new(mockTimeSlotRepo)
	slots.On("GetByID", mock.Anything, int64(3), int64(11)).Return(&domain.TimeSlot{
		ID:        11,
		LibraryID: 3,
		StartTime: "08:00",
		EndTime:   "16:00",
		SlotPools: domain.SlotPools{domain.SlotPoolMorning},
	}, nil)

	seats := new(mockSeatRepo)
	seats.On("GetByLibrary", mock.Anything, int64(3)).Return([]*domain.Seat{
		{ID: 105, LibraryID: 3, SeatNumber: 5, Mode: domain.SeatModeFixed, IsActive: true},
		{ID: 106, LibraryID: 3, SeatNumber: 6, Mode: domain.SeatModeFloat, IsActive: true},
		{ID: 107, LibraryID: 3, SeatNumber: 7, Mode: domain.SeatModeFixed, IsActive: false},
	}, nil)

	bookings := new(mockBookingRepo)
	bookings.On("GetOverlapping", mock.Anything, mock.Anything).Return([]*domain.Booking{{
		ID:        1,
		LibraryID: 3,
		SeatID:    ptr.Ptr(int64(105)),
		PlanType:  domain.PlanTypeFixed,
		ValidFrom: day(2025, 1, 1),
		ValidTo:   day(2025, 2, 1),
		Status:    domain.StatusActive,
	}}, nil)

	return NewUseCase(plans, slots, seats, bookings, nopLogger{})
}

func TestUseCase_AdjacentPeriodIsAvailable(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		LibraryID: 3, PlanID: 1, SeatID: 105,
		From: day(2025, 2, 1), To: day(2025, 3, 1),
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 5, resp.SeatNumber)
}

func TestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "overlapping period",
			req:     Request{LibraryID: 3, PlanID: 1, SeatID: 105, From: day(2025, 1, 15), To: day(2025, 2, 15)},
			wantErr: ErrSeatUnavailable,
		},
		{
			name:    "float seat for fixed plan",
			req:     Request{LibraryID: 3, PlanID: 1, SeatID: 106, From: day(2025, 2, 1), To: day(2025, 3, 1)},
			wantErr: ErrPlanMismatch,
		},
		{
			name:    "inactive seat",
			req:     Request{LibraryID: 3, PlanID: 1, SeatID: 107, From: day(2025, 2, 1), To: day(2025, 3, 1)},
			wantErr: ErrSeatUnavailable,
		},
		{
			name:    "unknown seat",
			req:     Request{LibraryID: 3, PlanID: 1, SeatID: 500, From: day(2025, 2, 1), To: day(2025, 3, 1)},
			wantErr: ErrSeatUnavailable,
		},
		{
			name:    "unknown plan",
			req:     Request{LibraryID: 3, PlanID: 99, SeatID: 105, From: day(2025, 2, 1), To: day(2025, 3, 1)},
			wantErr: ErrPlanNotFound,
		},
		{
			name:    "reversed range",
			req:     Request{LibraryID: 3, PlanID: 1, SeatID: 105, From: day(2025, 3, 1), To: day(2025, 2, 1)},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "missing seat",
			req:     Request{LibraryID: 3, PlanID: 1},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(t)
			req := tt.req
			resp, err := uc.Execute(context.Background(), &req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
