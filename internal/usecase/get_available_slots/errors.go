package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_available_slots: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidServiceDuration возвращается, когда у услуги неположительная длительность
	ErrInvalidServiceDuration = errors.New("get_available_slots: service duration must be positive")

	// ErrDateTooFarInFuture возвращается, когда период выходит за ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrRangeTooLong возвращается, когда период длиннее maxRangeDays
	ErrRangeTooLong = errors.New("get_available_slots: date range is too long")

	// ErrSessionExpired возвращается, когда бэкенд отклонил токен сессии
	ErrSessionExpired = errors.New("get_available_slots: session expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
