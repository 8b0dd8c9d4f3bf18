package catalog

import (
	"context"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// DataProvider источник данных бизнеса (PostgreSQL или внешний бэкенд)
type DataProvider interface {
	GetBusiness(ctx context.Context, code string) (*domain.Business, error)
	ListServices(ctx context.Context, code string) ([]domain.Service, error)
	ListSchedule(ctx context.Context, code string) (domain.WeeklySchedule, error)
	ListAppointments(ctx context.Context, code string, from, to time.Time) ([]domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
