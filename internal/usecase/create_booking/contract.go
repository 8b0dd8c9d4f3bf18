package create_booking

import (
	"context"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// DataProvider источник данных бизнеса и точка создания бронирований
type DataProvider interface {
	GetBusiness(ctx context.Context, code string) (*domain.Business, error)
	ListServices(ctx context.Context, code string) ([]domain.Service, error)
	ListSchedule(ctx context.Context, code string) (domain.WeeklySchedule, error)
	ListAppointments(ctx context.Context, code string, from, to time.Time) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, req domain.BookingRequest) (*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
