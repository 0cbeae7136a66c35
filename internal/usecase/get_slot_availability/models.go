package get_slot_availability

import (
	"time"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// Request модель запроса слотов кабинки на дату
type Request struct {
	Service domain.ServiceType // Тип услуги
	Date    time.Time          // Дата (без времени)
	Cabin   int64              // Номер кабинки (1..CabinCount)
}

// Response модель ответа: упорядоченный список слотов с остатком единиц.
// Для даты в прошлом или кабинки вне диапазона список пуст - внешние
// вызывающие могут передавать произвольный номер кабинки, это трактуется
// как "нет доступности", а не как ошибка.
type Response struct {
	Service domain.ServiceType
	Date    time.Time
	Cabin   int64
	Slots   []domain.SlotAvailability
}

// ReservableRequest модель запроса проверки доступности одного ключа
type ReservableRequest struct {
	Service domain.ServiceType
	Date    time.Time
	Cabin   int64
	Slot    types.TimeString
}
