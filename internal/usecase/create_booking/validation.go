package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// validateRequest валидирует контактные данные и состав запроса
func validateRequest(req *Request) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if req.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}

	if req.Gender == "" {
		return fmt.Errorf("%w: gender is required", ErrInvalidInput)
	}

	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	// Консультация указывается целиком либо не указывается вовсе
	if req.HasConsultation() {
		if req.ConsultationDate == nil || req.ConsultationTime == nil || req.ConsultationCabin == nil {
			return fmt.Errorf("%w: consultation requires date, time and cabin together", ErrInvalidInput)
		}
	}

	return nil
}

// validateReservation проверяет один ключ резервирования против расписания:
// дата указана и не в прошлом, кабинка в диапазоне, время совпадает со слотом
func validateReservation(
	schedule domain.ServiceSchedule,
	date time.Time,
	slot types.TimeString,
	cabin int64,
	now time.Time,
) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if slot.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	if err := slot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time format: %v", ErrInvalidInput, err)
	}

	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if !schedule.IsValidCabin(cabin) {
		return fmt.Errorf("%w: cabin %d, valid range 1..%d", ErrInvalidCabin, cabin, schedule.CabinCount)
	}

	if !schedule.HasSlot(slot) {
		return fmt.Errorf("%w: %s does not start a slot", ErrInvalidTimeSlot, slot)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
