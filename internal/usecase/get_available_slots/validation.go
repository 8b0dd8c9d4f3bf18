package get_available_slots

import (
	"fmt"
	"math"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.IsValidBusinessCode(req.BusinessCode) {
		return fmt.Errorf("%w: invalid business code", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.From.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.To.IsZero() && dateIn(req.To, time.UTC).Before(dateIn(req.From, time.UTC)) {
		return fmt.Errorf("%w: range end is before range start", ErrInvalidInput)
	}

	return nil
}

// validateRange проверяет длину периода и ограничение advanceBookingDays
func validateRange(first, last, now time.Time, settings Settings) error {
	days := daysBetween(first, last) + 1
	if settings.MaxRangeDays > 0 && days > settings.MaxRangeDays {
		return fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLong, days, settings.MaxRangeDays)
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if settings.AdvanceBookingDays == 0 {
		return nil
	}

	maxDate, _ := advanceLimit(now, first.Location(), settings.AdvanceBookingDays)
	if first.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	return nil
}

// advanceLimit последний день, на который еще можно записаться
// ok = false, если ограничения нет
func advanceLimit(now time.Time, loc *time.Location, advanceBookingDays int) (time.Time, bool) {
	if advanceBookingDays == 0 {
		return time.Time{}, false
	}
	return dateIn(now.In(loc), loc).AddDate(0, 0, advanceBookingDays), true
}

// closeDaysAfter оставляет дни после maxDate в ответе, но без слотов
func closeDaysAfter(days []Day, maxDate time.Time) []Day {
	for i := range days {
		if days[i].Date.After(maxDate) {
			days[i].Slots = []Slot{}
		}
	}
	return days
}

// dateIn возвращает полночь календарной даты t в часовом поясе loc
// Берутся компоненты даты самого t, без перевода в loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween количество календарных дней между полуночами (учитывает 23/25-часовые сутки)
func daysBetween(first, last time.Time) int {
	return int(math.Round(last.Sub(first).Hours() / 24))
}
