package get_slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований (агрегаты леджера)
type BookingRepository interface {
	CountBySlot(ctx context.Context, service domain.ServiceType, date string, cabin int64) (map[types.TimeString]int, error)
	CountByKey(ctx context.Context, service domain.ServiceType, date string, cabin int64, slot types.TimeString) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
