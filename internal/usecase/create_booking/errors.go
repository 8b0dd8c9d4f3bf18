package create_booking

import (
	"errors"
	"strings"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда интервал не совпадает ни с одним слотом расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот уже начался
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotUnavailable возвращается, когда слот занят (по предварительной проверке или по ответу бэкенда)
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrSessionExpired возвращается, когда бэкенд отклонил токен сессии
	ErrSessionExpired = errors.New("create_booking: session expired")

	// ErrRejected возвращается, когда бэкенд отклонил бронирование с пояснением
	ErrRejected = errors.New("create_booking: rejected by backend")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Сообщения для клиента
const (
	msgSlotUnavailable = "El horario acaba de ser reservado, elegí otro."
	msgSessionExpired  = "La sesión expiró, volvé a iniciar sesión."
	msgRejected        = "No pudimos confirmar el turno con los datos ingresados."
	msgTooLate         = "Ese horario ya pasó, elegí otro."
	msgInvalidTimeSlot = "El horario elegido no está disponible para este servicio."
	msgTooFarInFuture  = "Todavía no se pueden reservar turnos para esa fecha."
	msgInvalidInput    = "Revisá los datos del turno."
	msgBusinessMissing = "No encontramos el negocio."
	msgServiceMissing  = "No encontramos el servicio elegido."
	msgGeneric         = "No pudimos reservar el turno. Intentá de nuevo en unos minutos."
)

// RejectedError отказ бэкенда с текстом для клиента
type RejectedError struct {
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return ErrRejected.Error()
	}
	return ErrRejected.Error() + ": " + e.Detail
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// UserMessage возвращает сообщение об ошибке бронирования для клиента
func UserMessage(err error) string {
	var rejected *RejectedError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &rejected):
		if detail := strings.TrimSpace(rejected.Detail); detail != "" {
			return detail
		}
		return msgRejected
	case errors.Is(err, ErrSlotUnavailable):
		return msgSlotUnavailable
	case errors.Is(err, ErrSessionExpired):
		return msgSessionExpired
	case errors.Is(err, ErrRejected):
		return msgRejected
	case errors.Is(err, ErrTooLateToBook):
		return msgTooLate
	case errors.Is(err, ErrInvalidTimeSlot):
		return msgInvalidTimeSlot
	case errors.Is(err, ErrDateTooFarInFuture):
		return msgTooFarInFuture
	case errors.Is(err, ErrInvalidInput):
		return msgInvalidInput
	case errors.Is(err, ErrBusinessNotFound):
		return msgBusinessMissing
	case errors.Is(err, ErrServiceNotFound):
		return msgServiceMissing
	default:
		return msgGeneric
	}
}
