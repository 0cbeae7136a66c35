package domain

import "github.com/m04kA/MDC-BookingService/pkg/types"

// SlotAvailability represents one time slot of a cabin with its remaining
// capacity as of the moment the ledger was read.
type SlotAvailability struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableUnits  int // remaining units at this slot
	TotalUnits      int // configured capacity per slot per cabin
}

// IsFull returns true if the slot has no remaining units.
func (s *SlotAvailability) IsFull() bool {
	return s.AvailableUnits <= 0
}

// IsPartiallyBooked returns true if the slot has some but not all units taken.
func (s *SlotAvailability) IsPartiallyBooked() bool {
	return s.AvailableUnits > 0 && s.AvailableUnits < s.TotalUnits
}

// CabinAvailability is the coarse day-level signal for one cabin:
// how many of its total daily units remain.
type CabinAvailability struct {
	Cabin          int64
	AvailableUnits int
	TotalUnits     int
}
