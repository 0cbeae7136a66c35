package domain

import (
	"time"

	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// ReservationKey uniquely identifies one bookable unit-slot:
// (date, service, cabin, slot start time).
type ReservationKey struct {
	Date    time.Time
	Service ServiceType
	Cabin   int64
	Slot    types.TimeString
}

// Booking represents a confirmed visit. The procedure reservation is always
// present; the consultation reservation is optional and, if present, is a
// fully independent key. A booking is immutable after commit: there is no
// update or cancellation path, and ledger counts derived from bookings are
// never decremented.
type Booking struct {
	ID int64

	// Contact info
	Name   string
	Email  string
	Age    int
	Gender string
	Phone  string

	// Primary procedure reservation (required)
	ProcedureDate  time.Time
	ProcedureTime  types.TimeString
	ProcedureCabin int64

	// Consultation reservation (optional, all three set or all three nil)
	ConsultationDate  *time.Time
	ConsultationTime  *types.TimeString
	ConsultationCabin *int64

	CreatedAt time.Time
}

// HasConsultation reports whether the booking includes a consultation.
func (b *Booking) HasConsultation() bool {
	return b.ConsultationDate != nil && b.ConsultationTime != nil && b.ConsultationCabin != nil
}

// ProcedureKey returns the reservation key of the primary procedure.
func (b *Booking) ProcedureKey() ReservationKey {
	return ReservationKey{
		Date:    b.ProcedureDate,
		Service: ServiceProcedure,
		Cabin:   b.ProcedureCabin,
		Slot:    b.ProcedureTime,
	}
}

// ConsultationKey returns the consultation reservation key, if present.
func (b *Booking) ConsultationKey() (ReservationKey, bool) {
	if !b.HasConsultation() {
		return ReservationKey{}, false
	}
	return ReservationKey{
		Date:    *b.ConsultationDate,
		Service: ServiceConsultation,
		Cabin:   *b.ConsultationCabin,
		Slot:    *b.ConsultationTime,
	}, true
}
