package create_booking

import (
	"time"

	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	// Контактные данные пациента
	Name   string
	Email  string
	Age    int
	Gender string
	Phone  string

	// Обязательное резервирование процедуры
	ProcedureDate  time.Time        // Дата процедуры (без времени)
	ProcedureTime  types.TimeString // Время начала слота (например, "09:15")
	ProcedureCabin int64            // Номер кабинки (1..CabinCount)

	// Опциональное резервирование консультации (все три поля или ни одного)
	ConsultationDate  *time.Time
	ConsultationTime  *types.TimeString
	ConsultationCabin *int64
}

// HasConsultation проверяет, запрошена ли консультация (хотя бы одно поле)
func (r *Request) HasConsultation() bool {
	return r.ConsultationDate != nil || r.ConsultationTime != nil || r.ConsultationCabin != nil
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID int64 // ID созданного бронирования

	Name   string
	Email  string
	Age    int
	Gender string
	Phone  string

	ProcedureDate  time.Time
	ProcedureTime  types.TimeString
	ProcedureCabin int64

	ConsultationDate  *time.Time
	ConsultationTime  *types.TimeString
	ConsultationCabin *int64

	CreatedAt time.Time // Время создания
}
