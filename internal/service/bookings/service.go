package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	seatCache   SeatCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	seatCache SeatCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		seatCache:   seatCache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetStudentBookings получает историю подписок студента.
// Опционально фильтрует по библиотеке и статусу
func (s *Service) GetStudentBookings(ctx context.Context, req *models.GetStudentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudentBookings: fetching bookings for student=%d", req.StudentID)

	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentId must be positive", ErrInvalidInput)
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentBookings: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByStudentID(ctx, req.StudentID, req.LibraryID, status)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentBookings: fetched %d bookings for student=%d", len(bookings), req.StudentID)
	return models.FromDomainBookingList(bookings), nil
}

// GetLibraryBookings получает бронирования библиотеки с фильтрацией по студенту,
// месту, периоду и статусу. Без статуса возвращаются только PENDING/ACTIVE,
// если не выставлен IncludeInactive.
func (s *Service) GetLibraryBookings(ctx context.Context, req *models.GetLibraryBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetLibraryBookings: fetching bookings for library=%d, librarian=%d", req.LibraryID, req.LibrarianID)
	if req.SeatID != nil {
		logMsg += fmt.Sprintf(", seat=%d", *req.SeatID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetLibraryBookings: invalid filter for library=%d: %v", req.LibraryID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByLibraryWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetLibraryBookings: repository error for library=%d: %v", req.LibraryID, err)
		return nil, fmt.Errorf("%w: GetLibraryBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetLibraryBookings: fetched %d bookings for library=%d", len(bookings), req.LibraryID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет PENDING или ACTIVE бронирование от имени библиотекаря.
// Место и шкафчик освобождаются сразу, листинги библиотеки сбрасываются из кэша.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by librarian=%d", bookingID, req.LibrarianID)

	reason := strings.TrimSpace(req.CancellationReason)
	if req.LibrarianID <= 0 {
		return nil, fmt.Errorf("%w: librarianId must be positive", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is longer than %d", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.loadBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, reason, req.LibrarianID); err != nil {
			return s.repoError("Cancel", bookingID, err)
		}

		result, err = s.loadBooking(txCtx, "Cancel", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "Cancel", result.LibraryID)

	s.logger.Info("Cancel: cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// UpdateStatus переводит бронирование по жизненному циклу:
// PENDING -> ACTIVE -> COMPLETED, отмена из PENDING или ACTIVE.
// Вызывается библиотекарем или внешним планировщиком.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by librarian=%d",
		bookingID, req.Status, req.LibrarianID)

	next, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var result *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.loadBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: booking id=%d cannot move %s -> %s", bookingID, booking.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		if next == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(txCtx, bookingID, "", req.LibrarianID)
		} else {
			err = s.bookingRepo.UpdateStatus(txCtx, bookingID, next)
		}
		if err != nil {
			return s.repoError("UpdateStatus", bookingID, err)
		}

		result, err = s.loadBooking(txCtx, "UpdateStatus", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !next.IsOccupying() {
		s.invalidate(ctx, "UpdateStatus", result.LibraryID)
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, result.Status)
	return models.FromDomainBooking(result), nil
}

// DueTransitions вычисляет, какие PENDING/ACTIVE бронирования библиотеки пора перевести
// на момент now. Сам перевод выполняет внешний планировщик через UpdateStatus.
func (s *Service) DueTransitions(ctx context.Context, libraryID int64, now time.Time) (*models.DueTransitionsResponse, error) {
	s.logger.Info("DueTransitions: library=%d, now=%s", libraryID, now.Format(time.RFC3339))

	if libraryID <= 0 {
		return nil, fmt.Errorf("%w: libraryId must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByLibraryWithFilter(ctx, domain.BookingsFilter{LibraryID: libraryID})
	if err != nil {
		s.logger.Error("DueTransitions: repository error for library=%d: %v", libraryID, err)
		return nil, fmt.Errorf("%w: DueTransitions - repository error: %v", ErrInternal, err)
	}

	resp := &models.DueTransitionsResponse{Transitions: []models.DueTransition{}}
	for _, b := range bookings {
		next, due := b.DueTransition(now)
		if !due {
			continue
		}
		resp.Transitions = append(resp.Transitions, models.DueTransition{
			BookingID: b.ID,
			From:      string(b.Status),
			To:        string(next),
		})
	}

	s.logger.Info("DueTransitions: %d of %d bookings are due in library=%d", len(resp.Transitions), len(bookings), libraryID)
	return resp, nil
}

func (s *Service) loadBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError(op, id, err)
	}
	return booking, nil
}

func (s *Service) repoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// invalidate сбрасывает листинги библиотеки. Ошибка кэша не влияет на результат.
func (s *Service) invalidate(ctx context.Context, op string, libraryID int64) {
	if s.seatCache == nil {
		return
	}
	if err := s.seatCache.InvalidateLibrary(ctx, libraryID); err != nil {
		s.logger.Warn("%s: failed to invalidate seat cache for library=%d: %v", op, libraryID, err)
	}
}
