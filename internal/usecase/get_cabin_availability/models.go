package get_cabin_availability

import (
	"time"

	"github.com/m04kA/MDC-BookingService/internal/domain"
)

// Request модель запроса дневной занятости кабинок
type Request struct {
	Service domain.ServiceType // Тип услуги
	Date    time.Time          // Дата (без времени)
}

// Response модель ответа: остаток единиц по каждой кабинке.
// Для даты в прошлом список кабинок пуст - прошедшие даты не бронируются,
// но это не ошибка (в отличие от нераспарсиваемой даты, которую отклоняет
// HTTP-слой до вызова use case).
type Response struct {
	Service domain.ServiceType
	Date    time.Time
	Cabins  []domain.CabinAvailability
}
