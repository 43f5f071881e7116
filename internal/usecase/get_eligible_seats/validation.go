package get_eligible_seats

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LibraryID <= 0 {
		return fmt.Errorf("%w: libraryId must be positive", ErrInvalidInput)
	}

	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planId must be positive", ErrInvalidInput)
	}

	return nil
}

// resolveRange подставляет значения по умолчанию и проверяет период
func resolveRange(from, to, now time.Time) (domain.DateRange, error) {
	if from.IsZero() {
		from = domain.StartOfDay(now)
	}
	if to.IsZero() {
		to = domain.AddMonths(from, domain.DefaultMonthsRequested)
	}

	dateRange, err := domain.NewDateRange(from, to)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	return dateRange, nil
}
