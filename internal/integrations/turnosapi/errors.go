package turnosapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут, сборка запроса)
	ErrInternal = errors.New("turnosapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("turnosapi client: invalid response")
)
