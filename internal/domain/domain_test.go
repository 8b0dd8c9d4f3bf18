package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC) }
	slot := Interval{Start: at(11, 30), End: at(12, 0)}

	assert.True(t, slot.Overlaps(Interval{Start: at(11, 20), End: at(11, 40)}))
	assert.True(t, slot.Overlaps(Interval{Start: at(11, 0), End: at(13, 0)}))
	assert.False(t, slot.Overlaps(Interval{Start: at(11, 0), End: at(11, 30)}), "touching at start")
	assert.False(t, slot.Overlaps(Interval{Start: at(12, 0), End: at(12, 30)}), "touching at end")
}

func TestNewWeeklySchedule_KeepsBlockOrder(t *testing.T) {
	blocks := []WeeklyScheduleBlock{
		{Weekday: time.Monday, Start: "14:00", End: "18:00"},
		{Weekday: time.Sunday, Start: "10:00", End: "12:00"},
		{Weekday: time.Monday, Start: "09:00", End: "12:00"},
	}

	schedule := NewWeeklySchedule(blocks)

	assert.Len(t, schedule[time.Monday], 2)
	assert.Equal(t, "14:00", schedule[time.Monday][0].Start.String())
	assert.Equal(t, []WeeklyScheduleBlock{blocks[1], blocks[0], blocks[2]}, schedule.Blocks())
}

func TestWeeklyScheduleBlock_EffectiveStep(t *testing.T) {
	assert.Equal(t, DefaultStepMinutes, WeeklyScheduleBlock{}.EffectiveStep())
	assert.Equal(t, DefaultStepMinutes, WeeklyScheduleBlock{StepMinutes: -15}.EffectiveStep())
	assert.Equal(t, 15, WeeklyScheduleBlock{StepMinutes: 15}.EffectiveStep())
}

func TestIsValidBusinessCode(t *testing.T) {
	assert.True(t, IsValidBusinessCode("peluqueria-ana"))
	assert.False(t, IsValidBusinessCode("ab"))
	assert.False(t, IsValidBusinessCode("Peluqueria Ana"))
}

func TestValidationError_Is(t *testing.T) {
	var err error = &ValidationError{Detail: "el teléfono es inválido"}

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "el teléfono es inválido")
}
