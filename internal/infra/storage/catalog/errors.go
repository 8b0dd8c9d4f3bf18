package catalog

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес с таким кодом не найден
	ErrBusinessNotFound = errors.New("catalog.repository: business not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")

	// ErrInvalidTimeZone возвращается, если у бизнеса сохранен неизвестный часовой пояс
	ErrInvalidTimeZone = errors.New("catalog.repository: invalid business time zone")
)
