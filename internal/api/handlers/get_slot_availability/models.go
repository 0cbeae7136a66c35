package get_slot_availability

import (
	"github.com/m04kA/MDC-BookingService/internal/domain"
	getSlotAvailability "github.com/m04kA/MDC-BookingService/internal/usecase/get_slot_availability"
)

// SlotAvailabilityItem один временной слот с остатком единиц
type SlotAvailabilityItem struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableUnits  int    `json:"availableUnits"`
	TotalUnits      int    `json:"totalUnits"`
}

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	Service string                 `json:"service"`
	Date    string                 `json:"date"`
	Cabin   int64                  `json:"cabin"`
	Slots   []SlotAvailabilityItem `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotAvailability.Response) *SlotAvailabilityResponse {
	slots := make([]SlotAvailabilityItem, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotAvailabilityItem{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			AvailableUnits:  s.AvailableUnits,
			TotalUnits:      s.TotalUnits,
		}
	}
	return &SlotAvailabilityResponse{
		Service: string(resp.Service),
		Date:    resp.Date.Format(domain.DateFormat),
		Cabin:   resp.Cabin,
		Slots:   slots,
	}
}
