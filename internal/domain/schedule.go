package domain

import "github.com/m04kA/MDC-BookingService/pkg/types"

// GenerateSlots derives the ordered sequence of slot start times for the
// service's operating window. Pure and date-independent: the same schedule
// always produces the same slots. A slot is included only if it fits in
// full before the end of the window, so a partial tail interval is dropped.
func (s ServiceSchedule) GenerateSlots() []types.TimeString {
	slots := make([]types.TimeString, 0)
	current := s.StartTime

	for current.IsBefore(s.EndTime) {
		slotEnd, err := current.AddMinutes(s.SlotDurationMinutes)
		if err != nil {
			break
		}
		// AddMinutes wraps within a day; a slot end not after its start
		// crossed midnight and cannot be a valid slot
		if !slotEnd.IsAfter(current) {
			break
		}
		if slotEnd.IsAfter(s.EndTime) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(s.SlotDurationMinutes)
		if err != nil {
			break
		}
	}

	return slots
}

// SlotCount returns the number of slots per day for the service.
func (s ServiceSchedule) SlotCount() int {
	return len(s.GenerateSlots())
}

// TotalUnitsPerCabin returns the total bookable units of one cabin for one
// day: slot count times per-slot capacity.
func (s ServiceSchedule) TotalUnitsPerCabin() int {
	return s.SlotCount() * s.CapacityPerSlot
}

// HasSlot reports whether start is one of the generated slot start times.
func (s ServiceSchedule) HasSlot(start types.TimeString) bool {
	for _, slot := range s.GenerateSlots() {
		if slot == start {
			return true
		}
	}
	return false
}
