package calculate_pricing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	lockerRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/locker"
	"github.com/m04kA/SMC-SeatBookingService/internal/integrations/studentdirectory"
	"github.com/m04kA/SMC-SeatBookingService/pkg/pgerr"
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

type mockLockerRepo struct{ mock.Mock }

func (m *mockLockerRepo) GetByID(ctx context.Context, libraryID, id int64) (*domain.Locker, error) {
	args := m.Called(ctx, libraryID, id)
	l, _ := args.Get(0).(*domain.Locker)
	return l, args.Error(1)
}

type mockPromotionRepo struct{ mock.Mock }

func (m *mockPromotionRepo) GetPackageRules(ctx context.Context, libraryID, planID int64) ([]*domain.PackageRule, error) {
	args := m.Called(ctx, libraryID, planID)
	r, _ := args.Get(0).([]*domain.PackageRule)
	return r, args.Error(1)
}

func (m *mockPromotionRepo) GetOffersByCode(ctx context.Context, libraryID int64, code string) ([]*domain.Offer, error) {
	args := m.Called(ctx, libraryID, code)
	o, _ := args.Get(0).([]*domain.Offer)
	return o, args.Error(1)
}

type mockStudents struct{ mock.Mock }

func (m *mockStudents) GetStudent(ctx context.Context, libraryID, studentID int64) (*studentdirectory.Student, error) {
	args := m.Called(ctx, libraryID, studentID)
	s, _ := args.Get(0).(*studentdirectory.Student)
	return s, args.Error(1)
}

type countingMetrics struct {
	quotes map[string]int
}

func (c *countingMetrics) IncPricingQuote(result string) {
	if c.quotes == nil {
		c.quotes = map[string]int{}
	}
	c.quotes[result]++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	plans      *mockPlanRepo
	slots      *mockTimeSlotRepo
	lockers    *mockLockerRepo
	promotions *mockPromotionRepo
	students   *mockStudents
	metrics    *countingMetrics
	uc         *UseCase
}

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		plans:      new(mockPlanRepo),
		slots:      new(mockTimeSlotRepo),
		lockers:    new(mockLockerRepo),
		promotions: new(mockPromotionRepo),
		students:   new(mockStudents),
		metrics:    &countingMetrics{},
	}
	f.uc = NewUseCase(f.plans, f.slots, f.lockers, f.promotions, f.students, f.metrics, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}

	f.plans.On("GetByID", mock.Anything, int64(3), int64(1)).Return(&domain.Plan{
		ID:        1,
		LibraryID: 3,
		PlanType:  domain.PlanTypeFloat,
		Hours:     8,
		Price:     decimal.NewFromInt(2000),
		SlotPools: domain.SlotPools{domain.SlotPoolMorning},
	}, nil)
	f.promotions.On("GetPackageRules", mock.Anything, int64(3), int64(1)).Return([]*domain.PackageRule{
		{ID: 1, LibraryID: 3, PlanID: 1, Months: 12, PercentOff: 10},
	}, nil)
	return f
}

func offer(id int64, code string) *domain.Offer {
	return &domain.Offer{
		ID:          id,
		LibraryID:   3,
		Title:       "Winter",
		CouponCode:  ptr.Ptr(code),
		DiscountPct: ptr.Ptr(20),
		MaxDiscount: ptr.Ptr(decimal.NewFromInt(300)),
		ValidFrom:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		PlanIDs:     []int64{1},
		SlotPools:   domain.SlotPools{domain.SlotPoolMorning},
	}
}

func TestUseCase_NoDiscounts(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Pricing.MonthsRequested)
	assert.Equal(t, "2000", resp.Pricing.Total.String())
	assert.Equal(t, "0", resp.Pricing.PackageDiscountAmt.String())
	assert.Nil(t, resp.Pricing.OfferApplied)
	assert.Equal(t, 1, f.metrics.quotes["ok"])
}

func TestUseCase_PackageAndLocker(t *testing.T) {
	f := newFixture()
	f.lockers.On("GetByID", mock.Anything, int64(3), int64(8)).Return(&domain.Locker{
		ID: 8, LibraryID: 3, NumberOfLockers: 10, Price: decimal.NewFromInt(250),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		LibraryID: 3, PlanID: 1, MonthsRequested: 12, LockerID: ptr.Ptr(int64(8)),
	})
	require.NoError(t, err)

	assert.Equal(t, "24000", resp.Pricing.BaseTotal.String())
	assert.Equal(t, "2400", resp.Pricing.PackageDiscountAmt.String())
	assert.Equal(t, "250", resp.Pricing.LockerPrice.String())
	assert.Equal(t, "21850", resp.Pricing.Total.String())
}

func TestUseCase_CappedOffer(t *testing.T) {
	f := newFixture()
	f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "WINTER").
		Return([]*domain.Offer{offer(5, "WINTER")}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1, OfferCode: " WINTER "})
	require.NoError(t, err)

	require.NotNil(t, resp.Pricing.OfferApplied)
	assert.Equal(t, "300", resp.Pricing.OfferApplied.Discount.String())
	assert.Equal(t, "1700", resp.Pricing.Total.String())
	f.students.AssertNotCalled(t, "GetStudent", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_UnknownCoupon(t *testing.T) {
	f := newFixture()
	f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "XYZ").Return([]*domain.Offer{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1, OfferCode: "XYZ"})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
	assert.Equal(t, 1, f.metrics.quotes["invalid_coupon"])
}

func TestUseCase_NewUsersOnlyOffer(t *testing.T) {
	newUsers := offer(6, "HELLO")
	newUsers.NewUsersOnly = true

	t.Run("returning student", func(t *testing.T) {
		f := newFixture()
		f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "HELLO").Return([]*domain.Offer{newUsers}, nil)
		f.students.On("GetStudent", mock.Anything, int64(3), int64(42)).
			Return(&studentdirectory.Student{ID: 42, IsNewUser: false}, nil)

		_, err := f.uc.Execute(context.Background(), &Request{
			LibraryID: 3, PlanID: 1, OfferCode: "HELLO", StudentID: ptr.Ptr(int64(42)),
		})
		assert.ErrorIs(t, err, ErrOfferNotApplicable)
	})

	t.Run("new student", func(t *testing.T) {
		f := newFixture()
		f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "HELLO").Return([]*domain.Offer{newUsers}, nil)
		f.students.On("GetStudent", mock.Anything, int64(3), int64(42)).
			Return(&studentdirectory.Student{ID: 42, IsNewUser: true}, nil)

		resp, err := f.uc.Execute(context.Background(), &Request{
			LibraryID: 3, PlanID: 1, OfferCode: "HELLO", StudentID: ptr.Ptr(int64(42)),
		})
		require.NoError(t, err)
		assert.Equal(t, "1700", resp.Pricing.Total.String())
	})

	t.Run("anonymous quote", func(t *testing.T) {
		f := newFixture()
		f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "HELLO").Return([]*domain.Offer{newUsers}, nil)

		_, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1, OfferCode: "HELLO"})
		assert.ErrorIs(t, err, ErrOfferNotApplicable)
		f.students.AssertNotCalled(t, "GetStudent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown student", func(t *testing.T) {
		f := newFixture()
		f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "HELLO").Return([]*domain.Offer{newUsers}, nil)
		f.students.On("GetStudent", mock.Anything, int64(3), int64(42)).Return(nil, studentdirectory.ErrStudentNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{
			LibraryID: 3, PlanID: 1, OfferCode: "HELLO", StudentID: ptr.Ptr(int64(42)),
		})
		assert.ErrorIs(t, err, ErrOfferNotApplicable)
	})

	t.Run("directory down", func(t *testing.T) {
		f := newFixture()
		f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "HELLO").Return([]*domain.Offer{newUsers}, nil)
		f.students.On("GetStudent", mock.Anything, int64(3), int64(42)).Return(nil, studentdirectory.ErrInternal)

		_, err := f.uc.Execute(context.Background(), &Request{
			LibraryID: 3, PlanID: 1, OfferCode: "HELLO", StudentID: ptr.Ptr(int64(42)),
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_LockerOfAnotherLibrary(t *testing.T) {
	f := newFixture()
	f.lockers.On("GetByID", mock.Anything, int64(3), int64(9)).Return(nil, lockerRepo.ErrLockerNotFound)

	_, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1, LockerID: ptr.Ptr(int64(9))})
	assert.ErrorIs(t, err, ErrLockerNotFound)
}

func TestUseCase_InvalidMonths(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1, MonthsRequested: 25})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_RulesFailure(t *testing.T) {
	f := newFixture()
	f.promotions.ExpectedCalls = nil
	f.promotions.On("GetPackageRules", mock.Anything, int64(3), int64(1)).Return(nil, errors.New("db down"))

	_, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_ConflictPassesThrough(t *testing.T) {
	conflict := fmt.Errorf("%w: %w: GetOffersByCode - execute query: pq: could not serialize access", errors.New("exec"), pgerr.ErrConflict)

	t.Run("package rules", func(t *testing.T) {
		f := newFixture()
		f.promotions.ExpectedCalls = nil
		f.promotions.On("GetPackageRules", mock.Anything, int64(3), int64(1)).Return(nil, conflict)

		_, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1})

		assert.ErrorIs(t, err, pgerr.ErrConflict)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Equal(t, 1, f.metrics.quotes["conflict"])
	})

	t.Run("offers", func(t *testing.T) {
		f := newFixture()
		f.promotions.On("GetOffersByCode", mock.Anything, int64(3), "WINTER").Return(nil, conflict)

		_, err := f.uc.Execute(context.Background(), &Request{LibraryID: 3, PlanID: 1, OfferCode: "WINTER"})

		assert.ErrorIs(t, err, pgerr.ErrConflict)
		assert.NotErrorIs(t, err, ErrInternal)
	})
}
