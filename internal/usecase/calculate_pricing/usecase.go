package calculate_pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	lockerRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/locker"
	planRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/plan"
	timeslotRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SeatBookingService/internal/integrations/studentdirectory"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBookingService/pkg/pgerr"
)

// UseCase use case для расчёта стоимости подписки
type UseCase struct {
	planRepo      PlanRepository
	timeSlotRepo  TimeSlotRepository
	lockerRepo    LockerRepository
	promotionRepo PromotionRepository
	students      StudentDirectoryClient
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	planRepo PlanRepository,
	timeSlotRepo TimeSlotRepository,
	lockerRepo LockerRepository,
	promotionRepo PromotionRepository,
	students StudentDirectoryClient,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		planRepo:      planRepo,
		timeSlotRepo:  timeSlotRepo,
		lockerRepo:    lockerRepo,
		promotionRepo: promotionRepo,
		students:      students,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute считает цену. Ничего не сохраняет и может вызываться сколько угодно раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CalculatePricing: library=%d, plan=%d, months=%d, code=%q",
		req.LibraryID, req.PlanID, req.MonthsRequested, req.OfferCode)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculatePricing: validation failed: %v", err)
		uc.metrics.IncPricingQuote("invalid_input")
		return nil, err
	}

	plan, err := uc.planRepo.GetByID(ctx, req.LibraryID, req.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			uc.logger.Warn("CalculatePricing: plan id=%d not found in library=%d", req.PlanID, req.LibraryID)
			return nil, ErrPlanNotFound
		}
		uc.logger.Error("CalculatePricing: failed to get plan id=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	var slot *domain.TimeSlot
	if plan.IsFixed() && plan.TimeSlotID != nil {
		slot, err = uc.timeSlotRepo.GetByID(ctx, req.LibraryID, *plan.TimeSlotID)
		if err != nil && !errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			uc.logger.Error("CalculatePricing: failed to get time slot id=%d: %v", *plan.TimeSlotID, err)
			return nil, fmt.Errorf("%w: failed to get time slot: %v", ErrInternal, err)
		}
	}

	var locker *domain.Locker
	if req.LockerID != nil {
		locker, err = uc.lockerRepo.GetByID(ctx, req.LibraryID, *req.LockerID)
		if err != nil {
			if errors.Is(err, lockerRepo.ErrLockerNotFound) {
				uc.logger.Warn("CalculatePricing: locker id=%d not found in library=%d", *req.LockerID, req.LibraryID)
				return nil, ErrLockerNotFound
			}
			uc.logger.Error("CalculatePricing: failed to get locker id=%d: %v", *req.LockerID, err)
			return nil, fmt.Errorf("%w: failed to get locker: %v", ErrInternal, err)
		}
	}

	breakdown, err := uc.Quote(ctx, QuoteParams{
		Plan:            plan,
		TimeSlot:        slot,
		Locker:          locker,
		MonthsRequested: req.MonthsRequested,
		OfferCode:       req.OfferCode,
		StudentID:       req.StudentID,
		Now:             uc.timeProvider.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		LibraryID: req.LibraryID,
		PlanID:    req.PlanID,
		LockerID:  req.LockerID,
		Pricing:   *breakdown,
	}, nil
}

// Quote догружает правила пакетов, предложения по коду и, если предложение
// этого требует, историю студента, после чего считает цену.
func (uc *UseCase) Quote(ctx context.Context, params QuoteParams) (*domain.PricingBreakdown, error) {
	plan := params.Plan
	if plan == nil {
		return nil, fmt.Errorf("%w: plan is required", ErrInvalidInput)
	}

	rules, err := uc.promotionRepo.GetPackageRules(ctx, plan.LibraryID, plan.ID)
	if err != nil {
		return nil, uc.repoError(fmt.Sprintf("get package rules of plan=%d", plan.ID), err)
	}

	var offers []*domain.Offer
	var student *pricing.StudentContext

	code := strings.TrimSpace(params.OfferCode)
	if code != "" {
		offers, err = uc.promotionRepo.GetOffersByCode(ctx, plan.LibraryID, code)
		if err != nil {
			return nil, uc.repoError(fmt.Sprintf("get offers by code=%q", code), err)
		}

		if params.StudentID != nil && needsStudentHistory(offers) {
			student, err = uc.loadStudent(ctx, plan.LibraryID, *params.StudentID)
			if err != nil {
				uc.metrics.IncPricingQuote("error")
				return nil, err
			}
		}
	}

	breakdown, err := pricing.Calculate(pricing.Input{
		Plan:            plan,
		TimeSlot:        params.TimeSlot,
		MonthsRequested: params.MonthsRequested,
		Locker:          params.Locker,
		PackageRules:    rules,
		OfferCode:       code,
		Offers:          offers,
		Student:         student,
		Now:             params.Now,
	})
	if err != nil {
		return nil, uc.mapPricingError(plan, code, err)
	}

	uc.metrics.IncPricingQuote("ok")
	uc.logger.Info("Quote: plan=%d, months=%d, total=%s", plan.ID, breakdown.MonthsRequested, breakdown.Total.String())
	return breakdown, nil
}

// loadStudent получает историю студента. Студент, которого нет в справочнике,
// считается студентом без истории: движок откажет в предложении.
func (uc *UseCase) loadStudent(ctx context.Context, libraryID, studentID int64) (*pricing.StudentContext, error) {
	s, err := uc.students.GetStudent(ctx, libraryID, studentID)
	if err != nil {
		if errors.Is(err, studentdirectory.ErrStudentNotFound) {
			uc.logger.Warn("Quote: student id=%d not found in library=%d", studentID, libraryID)
			return nil, nil
		}
		uc.logger.Error("Quote: failed to get student id=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	return &pricing.StudentContext{
		IsNewUser:    s.IsNewUser,
		UsedOfferIDs: s.UsedOfferIDs,
	}, nil
}

// repoError пропускает конфликт транзакций как есть, чтобы вызывающая
// транзакция могла повториться. Остальное становится ErrInternal.
func (uc *UseCase) repoError(op string, err error) error {
	if errors.Is(err, pgerr.ErrConflict) {
		uc.logger.Warn("Quote: conflict on %s: %v", op, err)
		uc.metrics.IncPricingQuote("conflict")
		return err
	}
	uc.logger.Error("Quote: failed to %s: %v", op, err)
	uc.metrics.IncPricingQuote("error")
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) mapPricingError(plan *domain.Plan, code string, err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidCoupon):
		uc.logger.Warn("Quote: coupon %q rejected for plan=%d: %v", code, plan.ID, err)
		uc.metrics.IncPricingQuote("invalid_coupon")
		return fmt.Errorf("%w: %v", ErrInvalidCoupon, err)
	case errors.Is(err, pricing.ErrOfferNotApplicable):
		uc.logger.Warn("Quote: offer %q not applicable for plan=%d: %v", code, plan.ID, err)
		uc.metrics.IncPricingQuote("offer_not_applicable")
		return fmt.Errorf("%w: %v", ErrOfferNotApplicable, err)
	case errors.Is(err, pricing.ErrInvalidInput):
		uc.logger.Warn("Quote: invalid input for plan=%d: %v", plan.ID, err)
		uc.metrics.IncPricingQuote("invalid_input")
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("Quote: pricing failed for plan=%d: %v", plan.ID, err)
		uc.metrics.IncPricingQuote("error")
		return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}
}

func needsStudentHistory(offers []*domain.Offer) bool {
	for _, o := range offers {
		if o.NeedsStudentHistory() {
			return true
		}
	}
	return false
}
