package get_library_bookings

import (
	"context"

	"github.com/m04kA/SMC-SeatBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetLibraryBookings(ctx context.Context, req *models.GetLibraryBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
