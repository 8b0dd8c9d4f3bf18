package catalog

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("catalog: business not found")

	// ErrSessionExpired возвращается, когда бэкенд отклонил токен сессии
	ErrSessionExpired = errors.New("catalog: session expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
