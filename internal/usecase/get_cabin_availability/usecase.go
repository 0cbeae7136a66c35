package get_cabin_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MDC-BookingService/internal/domain"
)

// UseCase use case дневной сводки занятости кабинок:
// сколько единиц вместимости осталось у каждой кабинки на дату
type UseCase struct {
	bookingRepo  BookingRepository
	schedule     domain.ScheduleConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	schedule domain.ScheduleConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения занятости кабинок.
// Чтение без блокировок: ответ консистентен на момент выполнения запроса
// к БД и носит рекомендательный характер - финальная проверка доступности
// происходит при коммите бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCabinAvailability: service=%s, date=%s",
		req.Service, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCabinAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Находим расписание услуги
	schedule, err := uc.schedule.ByService(req.Service)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownServiceType) {
			uc.logger.Warn("GetCabinAvailability: unknown service %q", req.Service)
			return nil, ErrUnknownService
		}
		return nil, fmt.Errorf("%w: resolve schedule: %v", ErrInternal, err)
	}

	// 3. Дата в прошлом - пустой результат, не ошибка
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetCabinAvailability: date %s is in the past, returning empty result",
			req.Date.Format(domain.DateFormat))
		return &Response{
			Service: req.Service,
			Date:    req.Date,
			Cabins:  []domain.CabinAvailability{},
		}, nil
	}

	// 4. Читаем агрегат занятости по кабинкам
	consumed, err := uc.bookingRepo.CountByCabin(ctx, req.Service, req.Date.Format(domain.DateFormat))
	if err != nil {
		uc.logger.Error("GetCabinAvailability: failed to count consumed units: %v", err)
		return nil, fmt.Errorf("%w: failed to count consumed units: %v", ErrInternal, err)
	}

	// 5. Считаем остаток по каждой кабинке
	totalUnits := schedule.TotalUnitsPerCabin()
	cabins := make([]domain.CabinAvailability, 0, schedule.CabinCount)

	for cabin := int64(1); cabin <= schedule.CabinCount; cabin++ {
		available := totalUnits - consumed[cabin]
		if available < 0 {
			available = 0
		}
		cabins = append(cabins, domain.CabinAvailability{
			Cabin:          cabin,
			AvailableUnits: available,
			TotalUnits:     totalUnits,
		})
	}

	uc.logger.Info("GetCabinAvailability: service=%s, date=%s, cabins=%d",
		req.Service, req.Date.Format(domain.DateFormat), len(cabins))

	return &Response{
		Service: req.Service,
		Date:    req.Date,
		Cabins:  cabins,
	}, nil
}
