package agenda

import "errors"

var (
	// ErrAccessDenied возвращается, когда контакт клиента не совпадает с бронированием
	ErrAccessDenied = errors.New("agenda: contact does not match appointment")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("agenda: appointment cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("agenda: internal error")
)
