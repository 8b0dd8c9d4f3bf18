package domain

import "errors"

// Ошибки поставщика данных (внешний backend или встроенное хранилище)
var (
	ErrBusinessNotFound    = errors.New("business not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrConflict интервал уже занят другим бронированием
	ErrConflict = errors.New("time slot already taken")

	// ErrAuthExpired сессия клиента истекла или недействительна
	ErrAuthExpired = errors.New("session expired")

	// ErrValidation базовая ошибка для ValidationError
	ErrValidation = errors.New("validation failed")
)

// ValidationError отказ поставщика с пояснением для пользователя
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + e.Detail
}

// Is позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
