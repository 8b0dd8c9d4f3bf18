package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrOverlap возвращается, когда интервал пересекается с активным бронированием
	// (нарушение ограничения appointments_no_overlap)
	ErrOverlap = errors.New("appointment.repository: interval overlaps an active appointment")

	// ErrConcurrentUpdate возвращается при конфликте сериализуемых транзакций
	ErrConcurrentUpdate = errors.New("appointment.repository: concurrent update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
