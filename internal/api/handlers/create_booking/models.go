package create_booking

import (
	"time"

	"github.com/m04kA/MDC-BookingService/internal/domain"
	createBooking "github.com/m04kA/MDC-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Phone  string `json:"phone"`

	ProcedureDate  string `json:"procedureDate"` // "2025-11-03"
	ProcedureTime  string `json:"procedureTime"` // "09:15"
	ProcedureCabin int64  `json:"procedureCabin"`

	ConsultationDate  *string `json:"consultationDate,omitempty"`
	ConsultationTime  *string `json:"consultationTime,omitempty"`
	ConsultationCabin *int64  `json:"consultationCabin,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID int64 `json:"id"`

	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Phone  string `json:"phone"`

	ProcedureDate  string `json:"procedureDate"`
	ProcedureTime  string `json:"procedureTime"`
	ProcedureCabin int64  `json:"procedureCabin"`

	ConsultationDate  *string `json:"consultationDate,omitempty"`
	ConsultationTime  *string `json:"consultationTime,omitempty"`
	ConsultationCabin *int64  `json:"consultationCabin,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом дат и времени)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	procedureDate, err := time.Parse(domain.DateFormat, r.ProcedureDate)
	if err != nil {
		return nil, err
	}

	procedureTime, err := types.NewTimeStringFromString(r.ProcedureTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Name:           r.Name,
		Email:          r.Email,
		Age:            r.Age,
		Gender:         r.Gender,
		Phone:          r.Phone,
		ProcedureDate:  procedureDate,
		ProcedureTime:  procedureTime,
		ProcedureCabin: r.ProcedureCabin,
	}

	// Поля консультации парсим только если они присутствуют; их взаимную
	// согласованность проверяет use case
	if r.ConsultationDate != nil {
		consultationDate, err := time.Parse(domain.DateFormat, *r.ConsultationDate)
		if err != nil {
			return nil, err
		}
		req.ConsultationDate = &consultationDate
	}

	if r.ConsultationTime != nil {
		consultationTime, err := types.NewTimeStringFromString(*r.ConsultationTime)
		if err != nil {
			return nil, err
		}
		req.ConsultationTime = &consultationTime
	}

	req.ConsultationCabin = r.ConsultationCabin

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:             resp.ID,
		Name:           resp.Name,
		Email:          resp.Email,
		Age:            resp.Age,
		Gender:         resp.Gender,
		Phone:          resp.Phone,
		ProcedureDate:  resp.ProcedureDate.Format(domain.DateFormat),
		ProcedureTime:  resp.ProcedureTime.String(),
		ProcedureCabin: resp.ProcedureCabin,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.ConsultationDate != nil && resp.ConsultationTime != nil {
		date := resp.ConsultationDate.Format(domain.DateFormat)
		slot := resp.ConsultationTime.String()
		result.ConsultationDate = &date
		result.ConsultationTime = &slot
		result.ConsultationCabin = resp.ConsultationCabin
	}

	return result
}
