package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/MDC-BookingService/internal/domain"
)

// Service восстанавливает леджер занятости из хранилища бронирований.
// Леджер - производное состояние: каждая запись бронирования несёт один
// ключ процедуры и, опционально, один ключ консультации; счётчик ключа
// равен числу записей, ссылающихся на него. Используется при старте
// сервиса и для аудита консистентности.
type Service struct {
	bookingRepo BookingRepository
	schedule    domain.ScheduleConfig
	logger      Logger
}

// NewService создает новый экземпляр сервиса леджера
func NewService(bookingRepo BookingRepository, schedule domain.ScheduleConfig, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		schedule:    schedule,
		logger:      logger,
	}
}

// Rebuild агрегирует все бронирования в леджер: ключ резервирования -> число
// занятых единиц. Даты нормализуются к полуночи UTC, чтобы ключи совпадали
// независимо от представления времени в хранилище.
func (s *Service) Rebuild(ctx context.Context) (map[domain.ReservationKey]int, error) {
	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Rebuild - list bookings: %v", ErrInternal, err)
	}

	counts := make(map[domain.ReservationKey]int)

	for _, b := range bookings {
		counts[normalizeKey(b.ProcedureKey())]++

		if key, ok := b.ConsultationKey(); ok {
			counts[normalizeKey(key)]++
		}
	}

	s.logger.Info("Rebuild: aggregated %d bookings into %d reservation keys", len(bookings), len(counts))
	return counts, nil
}

// Audit восстанавливает леджер и проверяет инвариант вместимости:
// для каждого ключа 0 <= счётчик <= вместимость слота услуги, кабинка
// в настроенном диапазоне, слот существует в расписании. Нарушения
// логируются; при любом нарушении возвращается ErrInvariantViolated.
func (s *Service) Audit(ctx context.Context) error {
	counts, err := s.Rebuild(ctx)
	if err != nil {
		return err
	}

	violations := 0

	for key, count := range counts {
		schedule, err := s.schedule.ByService(key.Service)
		if err != nil {
			s.logger.Error("Audit: key %s references unknown service %q", formatKey(key), key.Service)
			violations++
			continue
		}

		if !schedule.IsValidCabin(key.Cabin) {
			s.logger.Error("Audit: key %s references cabin outside 1..%d", formatKey(key), schedule.CabinCount)
			violations++
			continue
		}

		if !schedule.HasSlot(key.Slot) {
			s.logger.Error("Audit: key %s references a start time that is not a slot", formatKey(key))
			violations++
			continue
		}

		if count > schedule.CapacityPerSlot {
			s.logger.Error("Audit: key %s holds %d units, capacity is %d",
				formatKey(key), count, schedule.CapacityPerSlot)
			violations++
		}
	}

	if violations > 0 {
		return fmt.Errorf("%w: %d violations", ErrInvariantViolated, violations)
	}

	s.logger.Info("Audit: ledger consistent, %d reservation keys checked", len(counts))
	return nil
}

// normalizeKey приводит дату ключа к полуночи UTC
func normalizeKey(key domain.ReservationKey) domain.ReservationKey {
	y, m, d := key.Date.Date()
	key.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return key
}

// formatKey форматирует ключ для сообщений аудита
func formatKey(key domain.ReservationKey) string {
	return fmt.Sprintf("(%s, %s, cabin=%d, slot=%s)",
		key.Date.Format(domain.DateFormat), key.Service, key.Cabin, key.Slot)
}
