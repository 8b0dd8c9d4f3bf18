package agenda

import (
	"context"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// CatalogRepository интерфейс репозитория бизнесов, услуг и расписания
type CatalogRepository interface {
	GetBusinessByCode(ctx context.Context, code string) (*domain.Business, error)
	ListServices(ctx context.Context, businessID int64) ([]domain.Service, error)
	ListScheduleBlocks(ctx context.Context, businessID int64) ([]domain.WeeklyScheduleBlock, error)
}

// AppointmentRepository интерфейс репозитория бронирований
type AppointmentRepository interface {
	Create(ctx context.Context, businessID int64, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error)
	ListInRange(ctx context.Context, businessID int64, from, to time.Time) ([]domain.Appointment, error)
	Cancel(ctx context.Context, businessID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
