package get_cabin_availability

import (
	"context"

	getCabinAvailability "github.com/m04kA/MDC-BookingService/internal/usecase/get_cabin_availability"
)

type GetCabinAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getCabinAvailability.Request) (*getCabinAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
