package get_eligible_seats

import (
	"context"

	getEligibleSeats "github.com/m04kA/SMC-SeatBookingService/internal/usecase/get_eligible_seats"
)

type GetEligibleSeatsUseCase interface {
	Execute(ctx context.Context, req *getEligibleSeats.Request) (*getEligibleSeats.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
