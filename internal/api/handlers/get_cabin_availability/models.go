package get_cabin_availability

import (
	"github.com/m04kA/MDC-BookingService/internal/domain"
	getCabinAvailability "github.com/m04kA/MDC-BookingService/internal/usecase/get_cabin_availability"
)

// CabinAvailabilityItem остаток единиц по одной кабинке
type CabinAvailabilityItem struct {
	Cabin          int64 `json:"cabin"`
	AvailableUnits int   `json:"availableUnits"`
	TotalUnits     int   `json:"totalUnits"`
}

// CabinAvailabilityResponse HTTP response model
type CabinAvailabilityResponse struct {
	Service string                  `json:"service"`
	Date    string                  `json:"date"`
	Cabins  []CabinAvailabilityItem `json:"cabins"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCabinAvailability.Response) *CabinAvailabilityResponse {
	cabins := make([]CabinAvailabilityItem, len(resp.Cabins))
	for i, c := range resp.Cabins {
		cabins[i] = CabinAvailabilityItem{
			Cabin:          c.Cabin,
			AvailableUnits: c.AvailableUnits,
			TotalUnits:     c.TotalUnits,
		}
	}
	return &CabinAvailabilityResponse{
		Service: string(resp.Service),
		Date:    resp.Date.Format(domain.DateFormat),
		Cabins:  cabins,
	}
}
