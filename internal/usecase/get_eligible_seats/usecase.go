package get_eligible_seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	seatsCache "github.com/m04kA/SMC-SeatBookingService/internal/infra/cache/seats"
	planRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/plan"
	timeslotRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/allocation"
)

// UseCase use case для получения мест, доступных под план на период
type UseCase struct {
	planRepo     PlanRepository
	timeSlotRepo TimeSlotRepository
	seatRepo     SeatRepository
	bookingRepo  BookingRepository
	cache        SeatCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	planRepo PlanRepository,
	timeSlotRepo TimeSlotRepository,
	seatRepo SeatRepository,
	bookingRepo BookingRepository,
	cache SeatCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		planRepo:     planRepo,
		timeSlotRepo: timeSlotRepo,
		seatRepo:     seatRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает листинг мест. Листинг допускает устаревание на TTL кэша:
// окончательная проверка выполняется при создании бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetEligibleSeats: library=%d, plan=%d", req.LibraryID, req.PlanID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetEligibleSeats: validation failed: %v", err)
		return nil, err
	}

	dateRange, err := resolveRange(req.From, req.To, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GetEligibleSeats: %v", err)
		return nil, err
	}

	plan, slot, err := uc.loadPlan(ctx, req.LibraryID, req.PlanID)
	if err != nil {
		return nil, err
	}

	key := seatsCache.ListingKey(req.LibraryID, req.PlanID, dateRange)
	if cached, found, err := uc.cache.Get(ctx, key); err != nil {
		uc.logger.Warn("GetEligibleSeats: cache read failed, key=%s: %v", key, err)
		uc.metrics.IncSeatCacheLookup("error")
	} else if found {
		uc.metrics.IncSeatCacheLookup("hit")
		uc.logger.Info("GetEligibleSeats: cache hit, key=%s, seats=%d", key, len(cached))
		return toResponse(plan, dateRange, cached), nil
	} else {
		uc.metrics.IncSeatCacheLookup("miss")
	}

	seats, err := uc.seatRepo.GetByLibrary(ctx, req.LibraryID)
	if err != nil {
		uc.logger.Error("GetEligibleSeats: failed to get seats of library=%d: %v", req.LibraryID, err)
		return nil, fmt.Errorf("%w: failed to get seats: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetOverlapping(ctx, domain.OverlapFilter{
		LibraryID: req.LibraryID,
		Range:     dateRange,
	})
	if err != nil {
		uc.logger.Error("GetEligibleSeats: failed to get bookings of library=%d: %v", req.LibraryID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	eligible, err := allocation.EligibleSeats(allocation.Request{
		Plan:     plan,
		TimeSlot: slot,
		Range:    dateRange,
		Seats:    seats,
		Bookings: bookings,
	})
	if err != nil {
		uc.logger.Error("GetEligibleSeats: allocation failed for plan=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: allocation failed: %v", ErrInternal, err)
	}

	if err := uc.cache.Set(ctx, key, eligible); err != nil {
		uc.logger.Warn("GetEligibleSeats: cache write failed, key=%s: %v", key, err)
	}

	uc.logger.Info("GetEligibleSeats: %d of %d seats eligible for plan=%d within %s",
		len(eligible), len(seats), req.PlanID, dateRange)

	return toResponse(plan, dateRange, eligible), nil
}

// loadPlan получает план и, для FIXED плана, его временной слот
func (uc *UseCase) loadPlan(ctx context.Context, libraryID, planID int64) (*domain.Plan, *domain.TimeSlot, error) {
	plan, err := uc.planRepo.GetByID(ctx, libraryID, planID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			uc.logger.Warn("GetEligibleSeats: plan id=%d not found in library=%d", planID, libraryID)
			return nil, nil, ErrPlanNotFound
		}
		uc.logger.Error("GetEligibleSeats: failed to get plan id=%d: %v", planID, err)
		return nil, nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	if !plan.IsFixed() || plan.TimeSlotID == nil {
		return plan, nil, nil
	}

	slot, err := uc.timeSlotRepo.GetByID(ctx, libraryID, *plan.TimeSlotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			uc.logger.Warn("GetEligibleSeats: time slot id=%d of plan id=%d not found", *plan.TimeSlotID, planID)
			return nil, nil, ErrTimeSlotNotFound
		}
		uc.logger.Error("GetEligibleSeats: failed to get time slot id=%d: %v", *plan.TimeSlotID, err)
		return nil, nil, fmt.Errorf("%w: failed to get time slot: %v", ErrInternal, err)
	}

	return plan, slot, nil
}

func toResponse(plan *domain.Plan, dateRange domain.DateRange, seats []*domain.Seat) *Response {
	resp := &Response{
		LibraryID: plan.LibraryID,
		PlanID:    plan.ID,
		PlanType:  string(plan.PlanType),
		From:      dateRange.From.Format(domain.DateFormat),
		To:        dateRange.To.Format(domain.DateFormat),
		Seats:     make([]SeatDTO, 0, len(seats)),
	}

	for _, s := range seats {
		resp.Seats = append(resp.Seats, SeatDTO{
			ID:                s.ID,
			SeatNumber:        s.SeatNumber,
			Mode:              string(s.Mode),
			LockerAutoInclude: s.LockerAutoInclude,
			LockerID:          s.LockerID,
		})
	}

	return resp
}
