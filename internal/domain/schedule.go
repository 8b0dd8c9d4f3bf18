package domain

import (
	"sort"
	"time"

	"github.com/turnate/booking-engine/pkg/types"
)

// WeeklyScheduleBlock is a recurring availability window on a day of the week.
// Several blocks per day are allowed and need not be contiguous.
type WeeklyScheduleBlock struct {
	Weekday     time.Weekday // 0 = Sunday
	Start       types.TimeString
	End         types.TimeString
	StepMinutes int // <= 0 means DefaultStepMinutes
}

// EffectiveStep returns the step used to advance between slot starts
func (b WeeklyScheduleBlock) EffectiveStep() int {
	if b.StepMinutes <= 0 {
		return DefaultStepMinutes
	}
	return b.StepMinutes
}

// WeeklySchedule maps day of week to its blocks, in definition order
type WeeklySchedule map[time.Weekday][]WeeklyScheduleBlock

// NewWeeklySchedule groups blocks by weekday keeping their relative order
func NewWeeklySchedule(blocks []WeeklyScheduleBlock) WeeklySchedule {
	schedule := make(WeeklySchedule)
	for _, b := range blocks {
		schedule[b.Weekday] = append(schedule[b.Weekday], b)
	}
	return schedule
}

// BlocksFor returns the blocks defined for the weekday of the given day
func (s WeeklySchedule) BlocksFor(day time.Time) []WeeklyScheduleBlock {
	return s[day.Weekday()]
}

// Blocks flattens the schedule ordered by weekday, then by definition order
func (s WeeklySchedule) Blocks() []WeeklyScheduleBlock {
	days := make([]int, 0, len(s))
	for d := range s {
		days = append(days, int(d))
	}
	sort.Ints(days)

	result := make([]WeeklyScheduleBlock, 0)
	for _, d := range days {
		result = append(result, s[time.Weekday(d)]...)
	}
	return result
}
