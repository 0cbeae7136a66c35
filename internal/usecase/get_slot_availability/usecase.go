package get_slot_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MDC-BookingService/internal/domain"
)

// UseCase use case получения слотов кабинки с остатком вместимости
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

// Execute выполняет use case получения слотов.
// Чтение без блокировок: остатки консистентны на момент запроса к БД
// и могут устареть сразу после ответа - финальную проверку делает коммит.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotAvailability: service=%s, date=%s, cabin=%d",
		req.Service, req.Date.Format(domain.DateFormat), req.Cabin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Находим расписание услуги
	schedule, err := uc.schedule.ByService(req.Service)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownServiceType) {
			uc.logger.Warn("GetSlotAvailability: unknown service %q", req.Service)
			return nil, ErrUnknownService
		}
		return nil, fmt.Errorf("%w: resolve schedule: %v", ErrInternal, err)
	}

	emptyResponse := &Response{
		Service: req.Service,
		Date:    req.Date,
		Cabin:   req.Cabin,
		Slots:   []domain.SlotAvailability{},
	}

	// 3. Кабинка вне диапазона - пустой результат, не ошибка
	if !schedule.IsValidCabin(req.Cabin) {
		uc.logger.Warn("GetSlotAvailability: cabin %d out of range 1..%d, returning empty result",
			req.Cabin, schedule.CabinCount)
		return emptyResponse, nil
	}

	// 4. Дата в прошлом - пустой результат, не ошибка
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetSlotAvailability: date %s is in the past, returning empty result",
			req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 5. Читаем агрегат занятости по слотам кабинки
	consumed, err := uc.bookingRepo.CountBySlot(ctx, req.Service, req.Date.Format(domain.DateFormat), req.Cabin)
	if err != nil {
		uc.logger.Error("GetSlotAvailability: failed to count consumed units: %v", err)
		return nil, fmt.Errorf("%w: failed to count consumed units: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты расписания и считаем остаток каждого
	slotStarts := schedule.GenerateSlots()
	slots := make([]domain.SlotAvailability, 0, len(slotStarts))

	for _, start := range slotStarts {
		available := schedule.CapacityPerSlot - consumed[start]
		if available < 0 {
			available = 0
		}
		slots = append(slots, domain.SlotAvailability{
			StartTime:       start,
			DurationMinutes: schedule.SlotDurationMinutes,
			AvailableUnits:  available,
			TotalUnits:      schedule.CapacityPerSlot,
		})
	}

	uc.logger.Info("GetSlotAvailability: service=%s, date=%s, cabin=%d, slots=%d",
		req.Service, req.Date.Format(domain.DateFormat), req.Cabin, len(slots))

	return &Response{
		Service: req.Service,
		Date:    req.Date,
		Cabin:   req.Cabin,
		Slots:   slots,
	}, nil
}

// IsReservable проверяет, что ключ резервирования можно забронировать:
// дата не в прошлом, кабинка и слот существуют и остаток единиц больше нуля.
// Проверка советующая: между её ответом и коммитом состояние может измениться,
// поэтому коммит повторяет её внутри сериализуемой транзакции.
func (uc *UseCase) IsReservable(ctx context.Context, req *ReservableRequest) (bool, error) {
	schedule, err := uc.schedule.ByService(req.Service)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownServiceType) {
			return false, ErrUnknownService
		}
		return false, fmt.Errorf("%w: resolve schedule: %v", ErrInternal, err)
	}

	if !schedule.IsValidCabin(req.Cabin) {
		return false, nil
	}

	if !schedule.HasSlot(req.Slot) {
		return false, nil
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		return false, nil
	}

	consumed, err := uc.bookingRepo.CountByKey(ctx, req.Service, req.Date.Format(domain.DateFormat), req.Cabin, req.Slot)
	if err != nil {
		uc.logger.Error("IsReservable: failed to count consumed units: %v", err)
		return false, fmt.Errorf("%w: failed to count consumed units: %v", ErrInternal, err)
	}

	return consumed < schedule.CapacityPerSlot, nil
}
