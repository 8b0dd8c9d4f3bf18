package slots

import (
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// ExpandDay генерирует все теоретически доступные слоты на день
//
// Для каждого блока расписания на день недели day шагаем от начала блока
// с шагом блока, пока current + duration <= конец блока.
// Блоки обрабатываются независимо, слоты склеиваются в порядке блоков.
// Время слотов строится в часовом поясе day, несуществующее время пропускается.
// При durationMinutes <= 0 слотов нет.
func ExpandDay(day time.Time, week domain.WeeklySchedule, durationMinutes int) []domain.CandidateSlot {
	result := make([]domain.CandidateSlot, 0)
	if durationMinutes <= 0 {
		return result
	}

	duration := time.Duration(durationMinutes) * time.Minute
	y, m, d := day.Date()
	loc := day.Location()

	for _, block := range week.BlocksFor(day) {
		blockStart := block.Start.Minutes()
		blockEnd := block.End.Minutes()
		step := block.EffectiveStep()

		for current := blockStart; current+durationMinutes <= blockEnd; current += step {
			start := time.Date(y, m, d, 0, current, 0, 0, loc)
			// Время, которого нет на часах (переход на летнее время), time.Date сдвигает
			if start.Hour()*60+start.Minute() != current {
				continue
			}
			result = append(result, domain.CandidateSlot{
				Start: start,
				End:   start.Add(duration),
			})
		}
	}

	return result
}
