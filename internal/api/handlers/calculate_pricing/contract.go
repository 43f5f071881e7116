package calculate_pricing

import (
	"context"

	calculatePricing "github.com/m04kA/SMC-SeatBookingService/internal/usecase/calculate_pricing"
)

type CalculatePricingUseCase interface {
	Execute(ctx context.Context, req *calculatePricing.Request) (*calculatePricing.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
