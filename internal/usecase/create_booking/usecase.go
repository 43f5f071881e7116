package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/booking"
	lockerRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/locker"
	planRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/plan"
	seatRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/seat"
	timeslotRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/allocation"
	"github.com/m04kA/SMC-SeatBookingService/internal/usecase/calculate_pricing"
	"github.com/m04kA/SMC-SeatBookingService/pkg/pgerr"
)

const metricsOperation = "create_booking"

// DefaultConflictRetries число повторов после проигранной гонки
const DefaultConflictRetries = 1

// UseCase use case для создания бронирования
type UseCase struct {
	planRepo        PlanRepository
	timeSlotRepo    TimeSlotRepository
	seatRepo        SeatRepository
	lockerRepo      LockerRepository
	bookingRepo     BookingRepository
	quoter          PricingQuoter
	seatCache       SeatCache
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	conflictRetries int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	planRepo PlanRepository,
	timeSlotRepo TimeSlotRepository,
	seatRepo SeatRepository,
	lockerRepo LockerRepository,
	bookingRepo BookingRepository,
	quoter PricingQuoter,
	seatCache SeatCache,
	metrics Metrics,
	txManager TransactionManager,
	conflictRetries int,
	logger Logger,
) *UseCase {
	if conflictRetries < 0 {
		conflictRetries = DefaultConflictRetries
	}

	return &UseCase{
		planRepo:        planRepo,
		timeSlotRepo:    timeSlotRepo,
		seatRepo:        seatRepo,
		lockerRepo:      lockerRepo,
		bookingRepo:     bookingRepo,
		quoter:          quoter,
		seatCache:       seatCache,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		conflictRetries: conflictRetries,
	}
}

// result то, что транзакция возвращает наружу
type result struct {
	booking *domain.Booking
	pricing *domain.PricingBreakdown
}

// Execute выполняет use case создания бронирования.
// Проверка места, проверка шкафчика, расчёт цены и вставка выполняются в одной
// сериализуемой транзакции под блокировкой строки места. Проигранная гонка повторяется
// conflictRetries раз, затем возвращается ErrConcurrencyConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%d, library=%d, plan=%d, seat=%v, locker=%v, months=%d, upgrade=%v",
		req.StudentID, req.LibraryID, req.PlanID, ptrString(req.SeatID), ptrString(req.LockerID),
		req.MonthsRequested, ptrString(req.UpgradeFromID))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	months := req.MonthsRequested
	if months == 0 {
		months = domain.DefaultMonthsRequested
	}

	// 2. План и его слот не меняются в ходе бронирования, читаем до транзакции
	plan, slot, err := uc.loadPlan(ctx, req.LibraryID, req.PlanID)
	if err != nil {
		return nil, err
	}

	// 3. Для FIXED плана место обязательно
	if plan.IsFixed() && req.SeatID == nil {
		uc.logger.Warn("CreateBooking: fixed plan id=%d requires a seat", plan.ID)
		return nil, fmt.Errorf("%w: fixed plan requires a seat", ErrPlanMismatch)
	}

	// 4. Транзакция с повтором при конфликте
	var res *result
	for attempt := 0; ; attempt++ {
		res, err = uc.attempt(ctx, req, plan, slot, months)
		if err == nil {
			break
		}
		if !errors.Is(err, pgerr.ErrConflict) {
			return nil, err
		}

		uc.metrics.IncConcurrencyConflict(metricsOperation)
		if attempt >= uc.conflictRetries {
			uc.logger.Warn("CreateBooking: conflict after %d attempts: %v", attempt+1, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
		}
		uc.logger.Warn("CreateBooking: conflict on attempt %d, retrying: %v", attempt+1, err)
	}

	created := res.booking

	// 5. Листинги библиотеки устарели
	if err := uc.seatCache.InvalidateLibrary(ctx, created.LibraryID); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate seat cache for library=%d: %v", created.LibraryID, err)
	}
	uc.metrics.IncBookingCreated(string(created.Status))

	uc.logger.Info("CreateBooking: created booking id=%d, status=%s, period=%s, total=%s",
		created.ID, created.Status, created.Range(), created.TotalAmount.String())

	return toResponse(created, res.pricing), nil
}

// attempt одна попытка создать бронирование в сериализуемой транзакции
func (uc *UseCase) attempt(
	ctx context.Context,
	req *Request,
	plan *domain.Plan,
	slot *domain.TimeSlot,
	months int,
) (*result, error) {
	now := uc.timeProvider.Now()
	var res *result

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Период: новое бронирование или продление
		dateRange, err := uc.resolveRange(txCtx, req, now, months)
		if err != nil {
			return err
		}

		// 4.2. Место: блокировка строки и повторная проверка доступности
		seat, err := uc.checkSeat(txCtx, req, plan, slot, dateRange)
		if err != nil {
			return err
		}

		// 4.3. Шкафчик: явный или закреплённый за местом
		locker, err := uc.checkLocker(txCtx, req, seat, dateRange)
		if err != nil {
			return err
		}

		// 4.4. Цена фиксируется в момент бронирования
		breakdown, err := uc.quoter.Quote(txCtx, calculate_pricing.QuoteParams{
			Plan:            plan,
			TimeSlot:        slot,
			Locker:          locker,
			MonthsRequested: months,
			OfferCode:       req.OfferCode,
			StudentID:       &req.StudentID,
			Now:             now,
		})
		if err != nil {
			return uc.mapPricingError(err)
		}

		// 4.5. Сохраняем
		booking := &domain.Booking{
			Reference:      uuid.New(),
			StudentID:      req.StudentID,
			LibraryID:      req.LibraryID,
			PlanID:         plan.ID,
			ValidFrom:      dateRange.From,
			ValidTo:        dateRange.To,
			Status:         domain.StatusPending,
			TotalAmount:    breakdown.Total,
			PlanType:       plan.PlanType,
			SlotPools:      plan.ApplicablePools(slot),
			UpgradedFromID: req.UpgradeFromID,
			CreatedBy:      req.AuthorizedBy,
			Notes:          req.Notes,
		}
		if req.ActivateImmediately {
			booking.Status = domain.StatusActive
		}
		if seat != nil {
			booking.SeatID = &seat.ID
		}
		if locker != nil {
			booking.LockerID = &locker.ID
		}
		if breakdown.OfferApplied != nil {
			booking.OfferID = &breakdown.OfferApplied.OfferID
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, pgerr.ErrConflict) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		res = &result{booking: created, pricing: breakdown}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// loadPlan получает план и, для FIXED плана, его временной слот
func (uc *UseCase) loadPlan(ctx context.Context, libraryID, planID int64) (*domain.Plan, *domain.TimeSlot, error) {
	plan, err := uc.planRepo.GetByID(ctx, libraryID, planID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			uc.logger.Warn("CreateBooking: plan id=%d not found in library=%d", planID, libraryID)
			return nil, nil, ErrPlanNotFound
		}
		uc.logger.Error("CreateBooking: failed to get plan id=%d: %v", planID, err)
		return nil, nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	if !plan.IsFixed() || plan.TimeSlotID == nil {
		return plan, nil, nil
	}

	slot, err := uc.timeSlotRepo.GetByID(ctx, libraryID, *plan.TimeSlotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			// без слота движок откажет в любом месте
			uc.logger.Warn("CreateBooking: time slot id=%d of plan id=%d not found", *plan.TimeSlotID, planID)
			return plan, nil, nil
		}
		uc.logger.Error("CreateBooking: failed to get time slot id=%d: %v", *plan.TimeSlotID, err)
		return nil, nil, fmt.Errorf("%w: failed to get time slot: %v", ErrInternal, err)
	}

	return plan, slot, nil
}

// resolveRange вычисляет период. При продлении строка текущего бронирования блокируется.
func (uc *UseCase) resolveRange(ctx context.Context, req *Request, now time.Time, months int) (domain.DateRange, error) {
	if req.UpgradeFromID == nil {
		dateRange, err := freshRange(req.StartDate, now, months)
		if err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
		}
		return dateRange, err
	}

	current, err := uc.bookingRepo.GetByID(ctx, *req.UpgradeFromID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreateBooking: booking id=%d to upgrade not found", *req.UpgradeFromID)
			return domain.DateRange{}, ErrBookingNotFound
		}
		return domain.DateRange{}, uc.repoError("get booking to upgrade", err)
	}

	if err := validateUpgrade(current, req); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return domain.DateRange{}, err
	}

	return upgradeRange(current, months)
}

// checkSeat блокирует выбранное место и повторяет проверку движка подбора на свежих данных.
// Для FLOAT плана без места проверяется только остаток ёмкости пула.
func (uc *UseCase) checkSeat(
	ctx context.Context,
	req *Request,
	plan *domain.Plan,
	slot *domain.TimeSlot,
	dateRange domain.DateRange,
) (*domain.Seat, error) {
	var locked *domain.Seat
	if req.SeatID != nil {
		seat, err := uc.seatRepo.GetByIDForUpdate(ctx, req.LibraryID, *req.SeatID)
		if err != nil {
			if errors.Is(err, seatRepo.ErrSeatNotFound) {
				uc.logger.Warn("CreateBooking: seat id=%d not found in library=%d", *req.SeatID, req.LibraryID)
				return nil, fmt.Errorf("%w: seat id=%d not found", ErrSeatUnavailable, *req.SeatID)
			}
			return nil, uc.repoError("lock seat", err)
		}
		locked = seat
	}

	seats, err := uc.seatRepo.GetByLibrary(ctx, req.LibraryID)
	if err != nil {
		return nil, uc.repoError("get seats", err)
	}

	bookings, err := uc.bookingRepo.GetOverlapping(ctx, domain.OverlapFilter{
		LibraryID: req.LibraryID,
		Range:     dateRange,
	})
	if err != nil {
		return nil, uc.repoError("get overlapping bookings", err)
	}

	allocReq := allocation.Request{
		Plan:     plan,
		TimeSlot: slot,
		Range:    dateRange,
		Seats:    seats,
		Bookings: bookings,
	}

	if locked != nil {
		if err := allocation.ValidateSeatChoice(locked.ID, allocReq); err != nil {
			return nil, uc.mapAllocationError(err)
		}
		return locked, nil
	}

	eligible, err := allocation.EligibleSeats(allocReq)
	if err != nil {
		return nil, uc.mapAllocationError(err)
	}
	if len(eligible) == 0 {
		uc.logger.Warn("CreateBooking: float pool of plan=%d is exhausted within %s", plan.ID, dateRange)
		return nil, fmt.Errorf("%w: no float capacity within %s", ErrSeatUnavailable, dateRange)
	}

	return nil, nil
}

// checkLocker блокирует шкафчик и проверяет, что на период остался свободный
func (uc *UseCase) checkLocker(
	ctx context.Context,
	req *Request,
	seat *domain.Seat,
	dateRange domain.DateRange,
) (*domain.Locker, error) {
	lockerID := req.LockerID
	if lockerID == nil && seat != nil && seat.LockerAutoInclude && seat.LockerID != nil {
		lockerID = seat.LockerID
	}
	if lockerID == nil {
		return nil, nil
	}

	locker, err := uc.lockerRepo.GetByIDForUpdate(ctx, req.LibraryID, *lockerID)
	if err != nil {
		if errors.Is(err, lockerRepo.ErrLockerNotFound) {
			uc.logger.Warn("CreateBooking: locker id=%d not found in library=%d", *lockerID, req.LibraryID)
			return nil, ErrLockerNotFound
		}
		return nil, uc.repoError("lock locker", err)
	}

	bookings, err := uc.bookingRepo.GetOverlapping(ctx, domain.OverlapFilter{
		LibraryID: req.LibraryID,
		Range:     dateRange,
		LockerID:  &locker.ID,
	})
	if err != nil {
		return nil, uc.repoError("get locker bookings", err)
	}

	if err := allocation.CheckLockerCapacity(locker, bookings, dateRange); err != nil {
		if errors.Is(err, allocation.ErrLockerCapacityExceeded) {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrLockerCapacityExceeded, err)
		}
		uc.logger.Error("CreateBooking: locker check failed: %v", err)
		return nil, fmt.Errorf("%w: locker check failed: %v", ErrInternal, err)
	}

	return locker, nil
}

// repoError пропускает конфликт наверх для повтора, остальное превращает в ErrInternal
func (uc *UseCase) repoError(op string, err error) error {
	if errors.Is(err, pgerr.ErrConflict) {
		return err
	}
	uc.logger.Error("CreateBooking: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) mapAllocationError(err error) error {
	switch {
	case errors.Is(err, allocation.ErrPlanMismatch):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrPlanMismatch, err)
	case errors.Is(err, allocation.ErrSeatUnavailable):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrSeatUnavailable, err)
	default:
		uc.logger.Error("CreateBooking: allocation failed: %v", err)
		return fmt.Errorf("%w: allocation failed: %v", ErrInternal, err)
	}
}

func (uc *UseCase) mapPricingError(err error) error {
	switch {
	case errors.Is(err, pgerr.ErrConflict):
		return err
	case errors.Is(err, calculate_pricing.ErrInvalidCoupon):
		return fmt.Errorf("%w: %v", ErrInvalidCoupon, err)
	case errors.Is(err, calculate_pricing.ErrOfferNotApplicable):
		return fmt.Errorf("%w: %v", ErrOfferNotApplicable, err)
	case errors.Is(err, calculate_pricing.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateBooking: pricing failed: %v", err)
		return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}
}

func toResponse(b *domain.Booking, pricing *domain.PricingBreakdown) *Response {
	return &Response{
		ID:             b.ID,
		Reference:      b.Reference.String(),
		StudentID:      b.StudentID,
		LibraryID:      b.LibraryID,
		PlanID:         b.PlanID,
		PlanType:       string(b.PlanType),
		SeatID:         b.SeatID,
		LockerID:       b.LockerID,
		ValidFrom:      b.ValidFrom.Format(domain.DateFormat),
		ValidTo:        b.ValidTo.Format(domain.DateFormat),
		Status:         string(b.Status),
		TotalAmount:    b.TotalAmount,
		OfferID:        b.OfferID,
		UpgradedFromID: b.UpgradedFromID,
		CreatedBy:      b.CreatedBy,
		Notes:          b.Notes,
		Pricing:        *pricing,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func ptrString(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}
