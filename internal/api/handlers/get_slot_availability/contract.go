package get_slot_availability

import (
	"context"

	getSlotAvailability "github.com/m04kA/MDC-BookingService/internal/usecase/get_slot_availability"
)

type GetSlotAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getSlotAvailability.Request) (*getSlotAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
