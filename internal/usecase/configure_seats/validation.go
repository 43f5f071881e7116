package configure_seats

import (
	"fmt"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/pkg/seatrange"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LibraryID <= 0 {
		return fmt.Errorf("%w: libraryId must be positive", ErrInvalidInput)
	}

	if req.LibrarianID <= 0 {
		return fmt.Errorf("%w: librarian is required", ErrInvalidInput)
	}

	mode := domain.SeatMode(req.Mode)
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown seat mode %q", ErrInvalidInput, req.Mode)
	}

	if mode == domain.SeatModeSpecial && len(req.AllowedPlanIDs) == 0 {
		return fmt.Errorf("%w: special seats require allowedPlanIds", ErrInvalidInput)
	}
	if mode != domain.SeatModeSpecial && len(req.AllowedPlanIDs) > 0 {
		return fmt.Errorf("%w: allowedPlanIds are only for special seats", ErrInvalidInput)
	}
	for _, id := range req.AllowedPlanIDs {
		if id <= 0 {
			return fmt.Errorf("%w: allowedPlanIds must be positive", ErrInvalidInput)
		}
	}

	if req.LockerAutoInclude && req.LockerID == nil {
		return fmt.Errorf("%w: lockerAutoInclude requires lockerId", ErrInvalidInput)
	}
	if req.LockerID != nil && *req.LockerID <= 0 {
		return fmt.Errorf("%w: lockerId must be positive", ErrInvalidInput)
	}

	return nil
}

// seatNumbers разбирает строку номеров и ограничивает размер пачки
func seatNumbers(raw string) ([]int, error) {
	ranges, err := seatrange.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeatRange, err)
	}

	total := 0
	for _, r := range ranges {
		total += r.Len()
	}
	if total > domain.MaxSeatsPerBulkCreate {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySeats, total, domain.MaxSeatsPerBulkCreate)
	}

	return seatrange.Expand(ranges), nil
}
