package validate_seat_choice

import (
	"context"

	validateSeatChoice "github.com/m04kA/SMC-SeatBookingService/internal/usecase/validate_seat_choice"
)

type ValidateSeatChoiceUseCase interface {
	Execute(ctx context.Context, req *validateSeatChoice.Request) (*validateSeatChoice.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
