package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings/models"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) GetByStudentID(ctx context.Context, studentID int64, libraryID *int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, studentID, libraryID, status)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) GetByLibraryWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, reason string, cancelledBy int64) error {
	return m.Called(ctx, id, reason, cancelledBy).Error(0)
}

type mockSeatCache struct {
	mock.Mock
}

func (m *mockSeatCache) InvalidateLibrary(ctx context.Context, libraryID int64) error {
	return m.Called(ctx, libraryID).Error(0)
}

type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		Reference:   uuid.New(),
		StudentID:   42,
		LibraryID:   3,
		PlanID:      1,
		PlanType:    domain.PlanTypeFixed,
		SeatID:      func() *int64 { v := int64(10); return &v }(),
		ValidFrom:   date(2024, 3, 1),
		ValidTo:     date(2024, 4, 1),
		Status:      status,
		TotalAmount: decimal.NewFromInt(1500),
	}
}

func newService(repo *mockBookingRepo, cache SeatCache) *Service {
	return NewService(repo, passTxManager{}, cache, nopLogger{})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)
	repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.StatusActive), nil)
	repo.On("GetByID", ctx, int64(2)).Return(nil, bookingRepo.ErrBookingNotFound)
	repo.On("GetByID", ctx, int64(3)).Return(nil, errors.New("db down"))

	svc := newService(repo, nil)

	resp, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Equal(t, "2024-03-01", resp.ValidFrom)
	assert.Equal(t, "2024-04-01", resp.ValidTo)
	assert.Equal(t, "1500", resp.TotalAmount.String())

	_, err = svc.GetByID(ctx, 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(ctx, 3)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)
	cache := new(mockSeatCache)

	cancelled := newBooking(1, domain.StatusCancelled)
	reason := "moved away"
	cancelled.CancellationReason = &reason

	repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.StatusActive), nil).Once()
	repo.On("Cancel", ctx, int64(1), "moved away", int64(77)).Return(nil)
	repo.On("GetByID", ctx, int64(1)).Return(cancelled, nil).Once()
	cache.On("InvalidateLibrary", ctx, int64(3)).Return(nil)

	svc := newService(repo, cache)

	resp, err := svc.Cancel(ctx, 1, &models.CancelBookingRequest{LibrarianID: 77, CancellationReason: "  moved away "})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_CancelFinishedBooking(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)
	repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.StatusCompleted), nil)

	svc := newService(repo, nil)

	_, err := svc.Cancel(ctx, 1, &models.CancelBookingRequest{LibrarianID: 77})
	assert.ErrorIs(t, err, ErrCannotCancel)
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelCacheFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)
	cache := new(mockSeatCache)

	repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.StatusPending), nil).Once()
	repo.On("Cancel", ctx, int64(1), "", int64(77)).Return(nil)
	repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.StatusCancelled), nil).Once()
	cache.On("InvalidateLibrary", ctx, int64(3)).Return(errors.New("redis down"))

	svc := newService(repo, cache)

	_, err := svc.Cancel(ctx, 1, &models.CancelBookingRequest{LibrarianID: 77})
	assert.NoError(t, err)
}

func TestService_CancelValidation(t *testing.T) {
	svc := newService(new(mockBookingRepo), nil)

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{LibrarianID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{LibrarianID: 1, CancellationReason: string(long)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		current domain.BookingStatus
		next    string
		wantErr error
	}{
		{name: "pending to active", current: domain.StatusPending, next: "ACTIVE"},
		{name: "active to completed", current: domain.StatusActive, next: "COMPLETED"},
		{name: "pending to completed", current: domain.StatusPending, next: "COMPLETED", wantErr: ErrInvalidTransition},
		{name: "completed to active", current: domain.StatusCompleted, next: "ACTIVE", wantErr: ErrInvalidTransition},
		{name: "cancelled to active", current: domain.StatusCancelled, next: "ACTIVE", wantErr: ErrInvalidTransition},
		{name: "unknown status", current: domain.StatusPending, next: "DONE", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(mockBookingRepo)

			repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, tt.current), nil).Once()
			if tt.wantErr == nil {
				repo.On("UpdateStatus", ctx, int64(1), domain.BookingStatus(tt.next)).Return(nil)
				repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.BookingStatus(tt.next)), nil).Once()
			}

			svc := newService(repo, nil)
			resp, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{LibrarianID: 5, Status: tt.next})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, resp.Status)
		})
	}
}

func TestService_UpdateStatusToCancelled(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)
	cache := new(mockSeatCache)

	repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.StatusActive), nil).Once()
	repo.On("Cancel", ctx, int64(1), "", int64(5)).Return(nil)
	repo.On("GetByID", ctx, int64(1)).Return(newBooking(1, domain.StatusCancelled), nil).Once()
	cache.On("InvalidateLibrary", ctx, int64(3)).Return(nil)

	svc := newService(repo, cache)

	resp, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{LibrarianID: 5, Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	cache.AssertExpectations(t)
}

func TestService_DueTransitions(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)

	startsToday := newBooking(1, domain.StatusPending)
	startsToday.ValidFrom = date(2024, 5, 1)
	startsToday.ValidTo = date(2024, 6, 1)

	startsLater := newBooking(2, domain.StatusPending)
	startsLater.ValidFrom = date(2024, 5, 2)
	startsLater.ValidTo = date(2024, 6, 2)

	endsToday := newBooking(3, domain.StatusActive)
	endsToday.ValidFrom = date(2024, 4, 1)
	endsToday.ValidTo = date(2024, 5, 1)

	running := newBooking(4, domain.StatusActive)
	running.ValidFrom = date(2024, 4, 15)
	running.ValidTo = date(2024, 5, 15)

	repo.On("GetByLibraryWithFilter", ctx, domain.BookingsFilter{LibraryID: 3}).
		Return([]*domain.Booking{startsToday, startsLater, endsToday, running}, nil)

	svc := newService(repo, nil)

	resp, err := svc.DueTransitions(ctx, 3, date(2024, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, []models.DueTransition{
		{BookingID: 1, From: "PENDING", To: "ACTIVE"},
		{BookingID: 3, From: "ACTIVE", To: "COMPLETED"},
	}, resp.Transitions)
}

func TestService_GetLibraryBookingsInvalidFilter(t *testing.T) {
	svc := newService(new(mockBookingRepo), nil)

	from := date(2024, 5, 1)
	to := date(2024, 4, 1)
	_, err := svc.GetLibraryBookings(context.Background(), &models.GetLibraryBookingsRequest{
		LibraryID: 3,
		From:      &from,
		To:        &to,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetStudentBookings(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)
	active := domain.StatusActive
	repo.On("GetByStudentID", ctx, int64(42), (*int64)(nil), &active).
		Return([]*domain.Booking{newBooking(1, domain.StatusActive)}, nil)

	svc := newService(repo, nil)

	status := "ACTIVE"
	resp, err := svc.GetStudentBookings(ctx, &models.GetStudentBookingsRequest{StudentID: 42, Status: &status})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	bad := "ALMOST"
	_, err = svc.GetStudentBookings(ctx, &models.GetStudentBookingsRequest{StudentID: 42, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
