package configure_seats

import (
	"context"

	configureSeats "github.com/m04kA/SMC-SeatBookingService/internal/usecase/configure_seats"
)

type UseCase interface {
	Execute(ctx context.Context, req *configureSeats.Request) (*configureSeats.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
