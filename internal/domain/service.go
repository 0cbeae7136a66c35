package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/MDC-BookingService/pkg/types"
)

// ServiceType identifies one of the two bookable services of the center.
type ServiceType string

const (
	// ServiceProcedure is the primary procedure (blood test).
	ServiceProcedure ServiceType = "procedure"
	// ServiceConsultation is the follow-up consultation.
	ServiceConsultation ServiceType = "consultation"
)

// ErrUnknownServiceType is returned for a service type outside the enum.
var ErrUnknownServiceType = errors.New("domain: unknown service type")

// ParseServiceType validates a wire value against the enum.
func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case ServiceProcedure, ServiceConsultation:
		return ServiceType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
	}
}

// ServiceSchedule is the immutable per-service configuration: operating
// window, slot duration and physical capacity. It is passed explicitly to
// every component that needs it; there are no ambient schedule constants.
type ServiceSchedule struct {
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	CabinCount          int64
	CapacityPerSlot     int
}

// Validate checks that the schedule is internally consistent.
func (s ServiceSchedule) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("start time %s must be before end time %s", s.StartTime, s.EndTime)
	}
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("slot duration %d out of range [%d, %d]",
			s.SlotDurationMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if s.CabinCount < MinCabinCount || s.CabinCount > MaxCabinCount {
		return fmt.Errorf("cabin count %d out of range [%d, %d]", s.CabinCount, MinCabinCount, MaxCabinCount)
	}
	if s.CapacityPerSlot < MinCapacityPerSlot || s.CapacityPerSlot > MaxCapacityPerSlot {
		return fmt.Errorf("capacity per slot %d out of range [%d, %d]",
			s.CapacityPerSlot, MinCapacityPerSlot, MaxCapacityPerSlot)
	}
	firstSlotEnd, err := s.StartTime.AddMinutes(s.SlotDurationMinutes)
	if err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	// AddMinutes wraps within a day, so an end not after the start means the
	// slot crosses midnight
	if !firstSlotEnd.IsAfter(s.StartTime) {
		return fmt.Errorf("slot of %d minutes starting at %s crosses midnight",
			s.SlotDurationMinutes, s.StartTime)
	}
	if firstSlotEnd.IsAfter(s.EndTime) {
		return fmt.Errorf("no %d-minute slot fits between %s and %s",
			s.SlotDurationMinutes, s.StartTime, s.EndTime)
	}
	return nil
}

// IsValidCabin reports whether cabin is within 1..CabinCount.
func (s ServiceSchedule) IsValidCabin(cabin int64) bool {
	return cabin >= 1 && cabin <= s.CabinCount
}

// ScheduleConfig holds the schedules of both services.
type ScheduleConfig struct {
	Procedure    ServiceSchedule
	Consultation ServiceSchedule
}

// ByService returns the schedule for the given service type.
func (c ScheduleConfig) ByService(t ServiceType) (ServiceSchedule, error) {
	switch t {
	case ServiceProcedure:
		return c.Procedure, nil
	case ServiceConsultation:
		return c.Consultation, nil
	default:
		return ServiceSchedule{}, fmt.Errorf("%w: %q", ErrUnknownServiceType, t)
	}
}

// Validate checks both schedules.
func (c ScheduleConfig) Validate() error {
	if err := c.Procedure.Validate(); err != nil {
		return fmt.Errorf("procedure schedule: %w", err)
	}
	if err := c.Consultation.Validate(); err != nil {
		return fmt.Errorf("consultation schedule: %w", err)
	}
	return nil
}

// DefaultScheduleConfig returns the center's stock configuration.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Procedure: ServiceSchedule{
			StartTime:           DefaultProcedureStartTime,
			EndTime:             DefaultProcedureEndTime,
			SlotDurationMinutes: DefaultProcedureSlotMinutes,
			CabinCount:          DefaultProcedureCabinCount,
			CapacityPerSlot:     DefaultProcedureCapacityPerSlot,
		},
		Consultation: ServiceSchedule{
			StartTime:           DefaultConsultationStartTime,
			EndTime:             DefaultConsultationEndTime,
			SlotDurationMinutes: DefaultConsultationSlotMinutes,
			CabinCount:          DefaultConsultationCabinCount,
			CapacityPerSlot:     DefaultConsultationCapacityPerSlot,
		},
	}
}
