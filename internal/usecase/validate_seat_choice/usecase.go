package validate_seat_choice

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	planRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/plan"
	timeslotRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/allocation"
)

// UseCase use case для проверки выбранного места перед бронированием.
// Всегда читает хранилище, кэш листингов не используется.
type UseCase struct {
	planRepo     PlanRepository
	timeSlotRepo TimeSlotRepository
	seatRepo     SeatRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	planRepo PlanRepository,
	timeSlotRepo TimeSlotRepository,
	seatRepo SeatRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		planRepo:     planRepo,
		timeSlotRepo: timeSlotRepo,
		seatRepo:     seatRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет место. Любая неоднозначность считается недоступностью места.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateSeatChoice: library=%d, plan=%d, seat=%d", req.LibraryID, req.PlanID, req.SeatID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateSeatChoice: validation failed: %v", err)
		return nil, err
	}

	dateRange, err := resolveRange(req.From, req.To, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("ValidateSeatChoice: %v", err)
		return nil, err
	}

	plan, err := uc.planRepo.GetByID(ctx, req.LibraryID, req.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			uc.logger.Warn("ValidateSeatChoice: plan id=%d not found in library=%d", req.PlanID, req.LibraryID)
			return nil, ErrPlanNotFound
		}
		uc.logger.Error("ValidateSeatChoice: failed to get plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	var slot *domain.TimeSlot
	if plan.IsFixed() && plan.TimeSlotID != nil {
		slot, err = uc.timeSlotRepo.GetByID(ctx, req.LibraryID, *plan.TimeSlotID)
		if err != nil && !errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			uc.logger.Error("ValidateSeatChoice: failed to get time slot id=%d: %v", *plan.TimeSlotID, err)
			return nil, fmt.Errorf("%w: failed to get time slot: %v", ErrInternal, err)
		}
		// без слота движок откажет в любом FIXED месте
	}

	seats, err := uc.seatRepo.GetByLibrary(ctx, req.LibraryID)
	if err != nil {
		uc.logger.Error("ValidateSeatChoice: failed to get seats of library=%d: %v", req.LibraryID, err)
		return nil, fmt.Errorf("%w: failed to get seats: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetOverlapping(ctx, domain.OverlapFilter{
		LibraryID: req.LibraryID,
		Range:     dateRange,
	})
	if err != nil {
		uc.logger.Error("ValidateSeatChoice: failed to get bookings of library=%d: %v", req.LibraryID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	err = allocation.ValidateSeatChoice(req.SeatID, allocation.Request{
		Plan:     plan,
		TimeSlot: slot,
		Range:    dateRange,
		Seats:    seats,
		Bookings: bookings,
	})
	if err != nil {
		return nil, uc.mapAllocationError(req, err)
	}

	resp := &Response{
		SeatID:    req.SeatID,
		PlanID:    req.PlanID,
		From:      dateRange.From.Format(domain.DateFormat),
		To:        dateRange.To.Format(domain.DateFormat),
		Available: true,
	}
	for _, s := range seats {
		if s.ID == req.SeatID {
			resp.SeatNumber = s.SeatNumber
			break
		}
	}

	uc.logger.Info("ValidateSeatChoice: seat id=%d is available for plan=%d within %s", req.SeatID, req.PlanID, dateRange)
	return resp, nil
}

func (uc *UseCase) mapAllocationError(req *Request, err error) error {
	switch {
	case errors.Is(err, allocation.ErrPlanMismatch):
		uc.logger.Warn("ValidateSeatChoice: seat id=%d does not serve plan=%d: %v", req.SeatID, req.PlanID, err)
		return fmt.Errorf("%w: %v", ErrPlanMismatch, err)
	case errors.Is(err, allocation.ErrSeatUnavailable):
		uc.logger.Warn("ValidateSeatChoice: seat id=%d unavailable: %v", req.SeatID, err)
		return fmt.Errorf("%w: %v", ErrSeatUnavailable, err)
	default:
		uc.logger.Error("ValidateSeatChoice: allocation failed for seat id=%d: %v", req.SeatID, err)
		return fmt.Errorf("%w: allocation failed: %v", ErrInternal, err)
	}
}
