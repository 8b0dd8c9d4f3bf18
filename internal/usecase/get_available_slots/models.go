package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
// From и To задают календарные даты (используются только год, месяц и день),
// которые интерпретируются в часовом поясе бизнеса. Нулевой To означает один день.
type Request struct {
	BusinessCode string
	ServiceID    int64
	From         time.Time
	To           time.Time
}

// Settings ограничения из конфигурации
type Settings struct {
	DefaultLocation    *time.Location // если у бизнеса не указан часовой пояс
	MaxRangeDays       int            // 0 = без ограничения
	AdvanceBookingDays int            // 0 = без ограничения
}

// Response модель ответа со списком доступных слотов по дням
type Response struct {
	BusinessCode    string
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Location        *time.Location
	Days            []Day
}

// Day доступные слоты на одну дату
type Day struct {
	Date  time.Time // начало дня в часовом поясе бизнеса
	Slots []Slot
}

// Slot модель временного слота
type Slot struct {
	Start time.Time
	End   time.Time
}

// TotalSlots возвращает количество слотов во всех днях ответа
func (r *Response) TotalSlots() int {
	total := 0
	for _, d := range r.Days {
		total += len(d.Slots)
	}
	return total
}
