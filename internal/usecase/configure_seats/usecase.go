package configure_seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	lockerRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/locker"
	planRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/plan"
	seatRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/seat"
)

// UseCase use case для массового создания мест библиотеки
type UseCase struct {
	seatRepo   SeatRepository
	planRepo   PlanRepository
	lockerRepo LockerRepository
	seatCache  SeatCache
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	seatRepo SeatRepository,
	planRepo PlanRepository,
	lockerRepo LockerRepository,
	seatCache SeatCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		seatRepo:   seatRepo,
		planRepo:   planRepo,
		lockerRepo: lockerRepo,
		seatCache:  seatCache,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute создаёт места по списку номеров. Уже существующие номера пропускаются
// и возвращаются в Skipped, ID новых мест выдаёт БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfigureSeats: library=%d, librarian=%d, seats=%q, mode=%s",
		req.LibraryID, req.LibrarianID, req.Seats, req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfigureSeats: validation failed: %v", err)
		return nil, err
	}

	numbers, err := seatNumbers(req.Seats)
	if err != nil {
		uc.logger.Warn("ConfigureSeats: %v", err)
		return nil, err
	}

	// 2. Ссылки на планы и шкафчик должны принадлежать библиотеке
	if err := uc.checkAllowedPlans(ctx, req); err != nil {
		return nil, err
	}
	if err := uc.checkLocker(ctx, req); err != nil {
		return nil, err
	}

	// 3. Отбор новых номеров и вставка в одной транзакции
	resp := &Response{
		LibraryID: req.LibraryID,
		Created:   []SeatDTO{},
		Skipped:   []int{},
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.seatRepo.GetSeatNumbers(txCtx, req.LibraryID)
		if err != nil {
			uc.logger.Error("ConfigureSeats: failed to get seat numbers of library=%d: %v", req.LibraryID, err)
			return fmt.Errorf("%w: failed to get seat numbers: %v", ErrInternal, err)
		}

		seats := make([]*domain.Seat, 0, len(numbers))
		for _, n := range numbers {
			if existing[n] {
				resp.Skipped = append(resp.Skipped, n)
				continue
			}
			seats = append(seats, &domain.Seat{
				LibraryID:         req.LibraryID,
				SeatNumber:        n,
				Mode:              domain.SeatMode(req.Mode),
				IsActive:          !req.Inactive,
				AllowedPlanIDs:    req.AllowedPlanIDs,
				LockerAutoInclude: req.LockerAutoInclude,
				LockerID:          req.LockerID,
			})
		}

		if len(seats) == 0 {
			return nil
		}

		created, err := uc.seatRepo.CreateBatch(txCtx, seats)
		if err != nil {
			if errors.Is(err, seatRepo.ErrDuplicateSeatNumber) {
				uc.logger.Warn("ConfigureSeats: seat numbers of library=%d taken concurrently: %v", req.LibraryID, err)
				return fmt.Errorf("%w: %v", ErrSeatNumbersTaken, err)
			}
			uc.logger.Error("ConfigureSeats: failed to create seats: %v", err)
			return fmt.Errorf("%w: failed to create seats: %v", ErrInternal, err)
		}

		for _, s := range created {
			resp.Created = append(resp.Created, toDTO(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Новые места меняют листинги библиотеки
	if len(resp.Created) > 0 {
		if err := uc.seatCache.InvalidateLibrary(ctx, req.LibraryID); err != nil {
			uc.logger.Warn("ConfigureSeats: failed to invalidate seat cache for library=%d: %v", req.LibraryID, err)
		}
	}

	uc.logger.Info("ConfigureSeats: library=%d, created=%d, skipped=%d",
		req.LibraryID, len(resp.Created), len(resp.Skipped))

	return resp, nil
}

// checkAllowedPlans проверяет, что allow-list состоит из FIXED планов библиотеки
func (uc *UseCase) checkAllowedPlans(ctx context.Context, req *Request) error {
	for _, id := range req.AllowedPlanIDs {
		plan, err := uc.planRepo.GetByID(ctx, req.LibraryID, id)
		if err != nil {
			if errors.Is(err, planRepo.ErrPlanNotFound) {
				uc.logger.Warn("ConfigureSeats: plan id=%d not found in library=%d", id, req.LibraryID)
				return fmt.Errorf("%w: id=%d", ErrPlanNotFound, id)
			}
			uc.logger.Error("ConfigureSeats: failed to get plan id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
		}
		if !plan.IsFixed() {
			uc.logger.Warn("ConfigureSeats: plan id=%d is %s", id, plan.PlanType)
			return fmt.Errorf("%w: plan id=%d is %s", ErrPlanMismatch, id, plan.PlanType)
		}
	}
	return nil
}

func (uc *UseCase) checkLocker(ctx context.Context, req *Request) error {
	if req.LockerID == nil {
		return nil
	}

	_, err := uc.lockerRepo.GetByID(ctx, req.LibraryID, *req.LockerID)
	if err != nil {
		if errors.Is(err, lockerRepo.ErrLockerNotFound) {
			uc.logger.Warn("ConfigureSeats: locker id=%d not found in library=%d", *req.LockerID, req.LibraryID)
			return ErrLockerNotFound
		}
		uc.logger.Error("ConfigureSeats: failed to get locker id=%d: %v", *req.LockerID, err)
		return fmt.Errorf("%w: failed to get locker: %v", ErrInternal, err)
	}
	return nil
}

func toDTO(s *domain.Seat) SeatDTO {
	return SeatDTO{
		ID:                s.ID,
		SeatNumber:        s.SeatNumber,
		Mode:              string(s.Mode),
		IsActive:          s.IsActive,
		AllowedPlanIDs:    s.AllowedPlanIDs,
		LockerAutoInclude: s.LockerAutoInclude,
		LockerID:          s.LockerID,
	}
}
