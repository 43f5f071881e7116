package calculate_pricing

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
)

const maxOfferCodeLength = 64

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LibraryID <= 0 {
		return fmt.Errorf("%w: libraryId must be positive", ErrInvalidInput)
	}

	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planId must be positive", ErrInvalidInput)
	}

	if req.MonthsRequested < 0 || req.MonthsRequested > domain.MaxMonthsRequested {
		return fmt.Errorf("%w: monthsRequested must be between 1 and %d", ErrInvalidInput, domain.MaxMonthsRequested)
	}

	if req.LockerID != nil && *req.LockerID <= 0 {
		return fmt.Errorf("%w: lockerId must be positive", ErrInvalidInput)
	}

	if req.StudentID != nil && *req.StudentID <= 0 {
		return fmt.Errorf("%w: studentId must be positive", ErrInvalidInput)
	}

	if len(strings.TrimSpace(req.OfferCode)) > maxOfferCodeLength {
		return fmt.Errorf("%w: offerCode is longer than %d", ErrInvalidInput, maxOfferCodeLength)
	}

	return nil
}
