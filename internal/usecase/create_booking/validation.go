package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentId must be positive", ErrInvalidInput)
	}

	if req.LibraryID <= 0 {
		return fmt.Errorf("%w: libraryId must be positive", ErrInvalidInput)
	}

	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planId must be positive", ErrInvalidInput)
	}

	if req.SeatID != nil && *req.SeatID <= 0 {
		return fmt.Errorf("%w: seatId must be positive", ErrInvalidInput)
	}

	if req.LockerID != nil && *req.LockerID <= 0 {
		return fmt.Errorf("%w: lockerId must be positive", ErrInvalidInput)
	}

	if req.MonthsRequested < 0 || req.MonthsRequested > domain.MaxMonthsRequested {
		return fmt.Errorf("%w: monthsRequested must be between 1 and %d", ErrInvalidInput, domain.MaxMonthsRequested)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.ActivateImmediately && (req.AuthorizedBy == nil || *req.AuthorizedBy <= 0) {
		return ErrAuthorizationRequired
	}

	return nil
}

// freshRange период нового бронирования: с requested (по умолчанию сегодня) на months календарных месяцев.
// Начало в прошлом не принимается.
func freshRange(requested, now time.Time, months int) (domain.DateRange, error) {
	today := domain.StartOfDay(now)

	from := today
	if !requested.IsZero() {
		from = domain.StartOfDay(requested)
	}
	if from.Before(today) {
		return domain.DateRange{}, fmt.Errorf("%w: start %s is in the past", ErrInvalidDateRange, from.Format(domain.DateFormat))
	}

	return checkedRange(domain.MonthsRange(from, months))
}

// upgradeRange период продления: начинается ровно там, где заканчивается текущее бронирование.
// Полуоткрытые интервалы не дают ни зазора, ни двойной оплаты дня.
func upgradeRange(current *domain.Booking, months int) (domain.DateRange, error) {
	return checkedRange(domain.MonthsRange(current.ValidTo, months))
}

func checkedRange(r domain.DateRange) (domain.DateRange, error) {
	if err := r.Validate(); err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	return r, nil
}

// validateUpgrade проверяет, что продлевается ACTIVE бронирование того же студента в той же библиотеке
func validateUpgrade(current *domain.Booking, req *Request) error {
	if current.StudentID != req.StudentID {
		return fmt.Errorf("%w: booking id=%d belongs to another student", ErrInvalidUpgrade, current.ID)
	}
	if current.LibraryID != req.LibraryID {
		return fmt.Errorf("%w: booking id=%d belongs to another library", ErrInvalidUpgrade, current.ID)
	}
	if current.Status != domain.StatusActive {
		return fmt.Errorf("%w: booking id=%d is %s", ErrInvalidUpgrade, current.ID, current.Status)
	}
	return nil
}
