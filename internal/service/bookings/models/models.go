package models

import (
	"time"

	"github.com/m04kA/MDC-BookingService/internal/domain"
)

// BookingResponse модель бронирования для HTTP ответов
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

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует доменное бронирование в HTTP модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:             b.ID,
		Name:           b.Name,
		Email:          b.Email,
		Age:            b.Age,
		Gender:         b.Gender,
		Phone:          b.Phone,
		ProcedureDate:  b.ProcedureDate.Format(domain.DateFormat),
		ProcedureTime:  b.ProcedureTime.String(),
		ProcedureCabin: b.ProcedureCabin,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}

	if b.HasConsultation() {
		date := b.ConsultationDate.Format(domain.DateFormat)
		slot := b.ConsultationTime.String()
		resp.ConsultationDate = &date
		resp.ConsultationTime = &slot
		resp.ConsultationCabin = b.ConsultationCabin
	}

	return resp
}

// FromDomainBookingList конвертирует список доменных бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
