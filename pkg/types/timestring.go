package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// minutesPerDay верхняя граница; "24:00" допустимо как конец рабочего дня
const minutesPerDay = 24 * 60

// TimeString время суток в формате HH:MM без привязки к дате
type TimeString string

// NewTimeString создает TimeString из времени (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes out of range", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// NewTimeStringFromString парсит строку вида "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes)
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() int {
	minutes, err := parseMinutes(string(t))
	if err != nil {
		return 0
	}
	return minutes
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// AddMinutes прибавляет минуты, не выходя за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени для указанного дня в его часовом поясе
func (t TimeString) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, t.Minutes(), 0, 0, day.Location())
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для колонок типа TIME ("09:00:00")
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	total := hours*60 + minutes
	if total > minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return total, nil
}
