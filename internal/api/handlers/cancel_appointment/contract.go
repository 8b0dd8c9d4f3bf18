package cancel_appointment

import "context"

type AgendaService interface {
	CancelAppointment(ctx context.Context, code string, id int64, contact string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
