package get_due_transitions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings/models"
)

type BookingService interface {
	DueTransitions(ctx context.Context, libraryID int64, now time.Time) (*models.DueTransitionsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
