package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/turnate/booking-engine/internal/domain"
)

// normalizeRequest обрезает пробелы и подставляет имя по умолчанию
func normalizeRequest(req *Request) {
	req.BusinessCode = strings.TrimSpace(req.BusinessCode)
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientPhone = strings.TrimSpace(req.ClientPhone)
	req.ClientEmail = strings.TrimSpace(req.ClientEmail)

	if req.ClientName == "" {
		req.ClientName = domain.DefaultClientName
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.IsValidBusinessCode(req.BusinessCode) {
		return fmt.Errorf("%w: invalid business code", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if len([]rune(req.ClientName)) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is too long", ErrInvalidInput)
	}

	if err := validatePhone(req.ClientPhone); err != nil {
		return err
	}

	return validateEmail(req.ClientEmail)
}

// validatePhone телефон необязателен; допускаются цифры, пробелы, +, -, скобки
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}

	if len(phone) > domain.MaxClientPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}

	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: phone contains invalid characters", ErrInvalidInput)
		}
	}

	if digits < 6 {
		return fmt.Errorf("%w: phone is too short", ErrInvalidInput)
	}

	return nil
}

// validateEmail email необязателен
func validateEmail(email string) error {
	if email == "" {
		return nil
	}

	if len(email) > domain.MaxClientEmailLength {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	return nil
}

// validateDuration проверяет, что интервал равен длительности услуги
func validateDuration(req *Request, service domain.Service) error {
	if req.End.Sub(req.Start) != time.Duration(service.DurationMinutes)*time.Minute {
		return fmt.Errorf("%w: interval must last %d minutes", ErrInvalidInput, service.DurationMinutes)
	}
	return nil
}

// validateDate проверяет ограничение advanceBookingDays
func validateDate(day, now time.Time, advanceBookingDays int) error {
	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := startOfDay(now.In(day.Location())).AddDate(0, 0, advanceBookingDays)
	if day.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// findCandidate ищет слот расписания с точно таким же интервалом
func findCandidate(candidates []domain.CandidateSlot, start, end time.Time) (domain.CandidateSlot, bool) {
	for _, c := range candidates {
		if c.Start.Equal(start) && c.End.Equal(end) {
			return c, true
		}
	}
	return domain.CandidateSlot{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
