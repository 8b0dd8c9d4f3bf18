package slots

import (
	"sort"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// OccupancyIndex занятые интервалы, сгруппированные по календарному дню
// Ключ дня: YYYY-MM-DD в часовом поясе бизнеса. Индекс неизменяемый,
// при изменении списка бронирований строится заново.
type OccupancyIndex struct {
	loc  *time.Location
	days map[string][]domain.Interval
}

// BuildOccupancyIndex строит индекс по плоскому списку бронирований
// Неактивные (отмененные) бронирования пропускаются. Бронирование,
// пересекающее полночь, попадает в каждый затронутый день.
func BuildOccupancyIndex(appointments []domain.Appointment, loc *time.Location) OccupancyIndex {
	if loc == nil {
		loc = time.UTC
	}

	days := make(map[string][]domain.Interval)

	for i := range appointments {
		a := &appointments[i]
		if !a.IsActive() || !a.End.After(a.Start) {
			continue
		}

		interval := a.Interval()
		lastDay := startOfDay(a.End.Add(-time.Nanosecond).In(loc))
		for day := startOfDay(a.Start.In(loc)); !day.After(lastDay); day = day.AddDate(0, 0, 1) {
			key := day.Format(domain.DateFormat)
			days[key] = append(days[key], interval)
		}
	}

	for key := range days {
		intervals := days[key]
		sort.SliceStable(intervals, func(i, j int) bool {
			return intervals[i].Start.Before(intervals[j].Start)
		})
	}

	return OccupancyIndex{loc: loc, days: days}
}

// DayKey возвращает ключ дня для момента времени в часовом поясе индекса
func (idx OccupancyIndex) DayKey(t time.Time) string {
	loc := idx.loc
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(domain.DateFormat)
}

// Day возвращает занятые интервалы по ключу дня (может быть пустым)
func (idx OccupancyIndex) Day(key string) []domain.Interval {
	return idx.days[key]
}

// On возвращает занятые интервалы на день, к которому относится t
func (idx OccupancyIndex) On(t time.Time) []domain.Interval {
	return idx.days[idx.DayKey(t)]
}

// Len возвращает количество дней с занятыми интервалами
func (idx OccupancyIndex) Len() int {
	return len(idx.days)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
