package domain

// Default schedule values (used when config.toml omits a schedule section).
const (
	DefaultProcedureStartTime       = "09:00"
	DefaultProcedureEndTime         = "13:00"
	DefaultProcedureSlotMinutes     = 15
	DefaultProcedureCabinCount      = 4
	DefaultProcedureCapacityPerSlot = 4

	DefaultConsultationStartTime       = "10:00"
	DefaultConsultationEndTime         = "18:00"
	DefaultConsultationSlotMinutes     = 30
	DefaultConsultationCabinCount      = 4
	DefaultConsultationCapacityPerSlot = 1
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinCabinCount          = 1
	MaxCabinCount          = 100
	MinCapacityPerSlot     = 1
	MaxCapacityPerSlot     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
