package slots

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

var (
	// ErrInvalidDuration длительность услуги должна быть положительной
	ErrInvalidDuration = errors.New("slots: service duration must be positive")

	// ErrInvalidRange конец периода раньше начала
	ErrInvalidRange = errors.New("slots: range end is before range start")

	// ErrRangeTooLong период длиннее допустимого
	ErrRangeTooLong = errors.New("slots: range is too long")
)

// Input исходные данные для расчета доступности
type Input struct {
	Schedule        domain.WeeklySchedule
	DurationMinutes int
	Occupancy       OccupancyIndex
	Now             time.Time
}

// Day доступные слоты на один календарный день
type Day struct {
	Date  time.Time // начало дня в часовом поясе бизнеса
	Slots []domain.CandidateSlot
}

// Available возвращает слоты дня, которые можно предложить клиенту, по возрастанию начала
func Available(day time.Time, in Input) ([]domain.CandidateSlot, error) {
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, in.DurationMinutes)
	}

	available := FilterAvailable(ExpandDay(day, in.Schedule, in.DurationMinutes), in.Occupancy, in.Now)

	// Блоки дня могут быть заданы не по порядку
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].Start.Before(available[j].Start)
	})

	return available, nil
}

// AvailableRange считает доступность для каждого дня периода [from, to] включительно
// from и to интерпретируются как календарные даты в их часовом поясе.
// maxDays <= 0 снимает ограничение на длину периода.
func AvailableRange(from, to time.Time, maxDays int, in Input) ([]Day, error) {
	first := startOfDay(from)
	ty, tm, td := to.Date()
	last := time.Date(ty, tm, td, 0, 0, 0, 0, from.Location())

	if last.Before(first) {
		return nil, ErrInvalidRange
	}

	// Округление компенсирует переходы на летнее время (23/25 часов в сутках)
	days := int(math.Round(last.Sub(first).Hours()/24)) + 1
	if maxDays > 0 && days > maxDays {
		return nil, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLong, days, maxDays)
	}

	result := make([]Day, 0, days)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		available, err := Available(d, in)
		if err != nil {
			return nil, err
		}
		result = append(result, Day{Date: d, Slots: available})
	}

	return result, nil
}
