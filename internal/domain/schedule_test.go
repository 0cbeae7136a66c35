package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MDC-BookingService/pkg/types"
)

func TestGenerateSlots_ProcedureDefaults(t *testing.T) {
	schedule := DefaultScheduleConfig().Procedure

	slots := schedule.GenerateSlots()

	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("09:15"), slots[1])
	assert.Equal(t, types.TimeString("12:45"), slots[15])
}

func TestGenerateSlots_ConsultationDefaults(t *testing.T) {
	schedule := DefaultScheduleConfig().Consultation

	slots := schedule.GenerateSlots()

	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[15])
}

func TestGenerateSlots_PartialTailDropped(t *testing.T) {
	// 09:00-10:10 with 25-minute slots: 09:50 would end at 10:15,
	// past the window, so only two slots fit
	schedule := ServiceSchedule{
		StartTime:           "09:00",
		EndTime:             "10:10",
		SlotDurationMinutes: 25,
		CabinCount:          1,
		CapacityPerSlot:     1,
	}

	slots := schedule.GenerateSlots()

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("09:25"), slots[1])
}

func TestGenerateSlots_ExactFit(t *testing.T) {
	schedule := ServiceSchedule{
		StartTime:           "09:00",
		EndTime:             "10:00",
		SlotDurationMinutes: 30,
		CabinCount:          1,
		CapacityPerSlot:     1,
	}

	slots := schedule.GenerateSlots()

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:30"), slots[1])
}

// A slot crossing midnight is never generated: AddMinutes wraps within a day,
// and without the guard the sequence would be nonsense
func TestGenerateSlots_MidnightWrapProducesNoSlots(t *testing.T) {
	schedule := ServiceSchedule{
		StartTime:           "20:00",
		EndTime:             "23:59",
		SlotDurationMinutes: 480,
		CabinCount:          1,
		CapacityPerSlot:     1,
	}

	assert.Empty(t, schedule.GenerateSlots())
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	schedule := DefaultScheduleConfig().Procedure

	assert.Equal(t, schedule.GenerateSlots(), schedule.GenerateSlots())
}

func TestTotalUnitsPerCabin(t *testing.T) {
	cfg := DefaultScheduleConfig()

	// 16 slots * 4 units for the procedure, 16 * 1 for the consultation
	assert.Equal(t, 64, cfg.Procedure.TotalUnitsPerCabin())
	assert.Equal(t, 16, cfg.Consultation.TotalUnitsPerCabin())
}

func TestHasSlot(t *testing.T) {
	schedule := DefaultScheduleConfig().Procedure

	assert.True(t, schedule.HasSlot("09:00"))
	assert.True(t, schedule.HasSlot("12:45"))
	assert.False(t, schedule.HasSlot("09:10"))
	assert.False(t, schedule.HasSlot("13:00"))
	assert.False(t, schedule.HasSlot("08:45"))
}

func TestIsValidCabin(t *testing.T) {
	schedule := DefaultScheduleConfig().Procedure

	assert.True(t, schedule.IsValidCabin(1))
	assert.True(t, schedule.IsValidCabin(4))
	assert.False(t, schedule.IsValidCabin(0))
	assert.False(t, schedule.IsValidCabin(5))
	assert.False(t, schedule.IsValidCabin(-1))
}

func TestServiceScheduleValidate(t *testing.T) {
	valid := DefaultScheduleConfig().Procedure
	require.NoError(t, valid.Validate())

	inverted := valid
	inverted.StartTime = "14:00"
	inverted.EndTime = "09:00"
	assert.Error(t, inverted.Validate())

	badTime := valid
	badTime.StartTime = "9am"
	assert.Error(t, badTime.Validate())

	noCabins := valid
	noCabins.CabinCount = 0
	assert.Error(t, noCabins.Validate())

	// First slot crosses midnight
	wrapping := valid
	wrapping.StartTime = "20:00"
	wrapping.EndTime = "23:59"
	wrapping.SlotDurationMinutes = 480
	assert.Error(t, wrapping.Validate())

	// Slot longer than the whole operating window
	tooLong := valid
	tooLong.SlotDurationMinutes = 300
	assert.Error(t, tooLong.Validate())
}

func TestScheduleConfigByService(t *testing.T) {
	cfg := DefaultScheduleConfig()

	procedure, err := cfg.ByService(ServiceProcedure)
	require.NoError(t, err)
	assert.Equal(t, cfg.Procedure, procedure)

	consultation, err := cfg.ByService(ServiceConsultation)
	require.NoError(t, err)
	assert.Equal(t, cfg.Consultation, consultation)

	_, err = cfg.ByService("massage")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestParseServiceType(t *testing.T) {
	service, err := ParseServiceType("procedure")
	require.NoError(t, err)
	assert.Equal(t, ServiceProcedure, service)

	service, err = ParseServiceType("consultation")
	require.NoError(t, err)
	assert.Equal(t, ServiceConsultation, service)

	_, err = ParseServiceType("Procedure")
	assert.ErrorIs(t, err, ErrUnknownServiceType)

	_, err = ParseServiceType("")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}
