package get_schedule

import (
	"context"

	"github.com/turnate/booking-engine/internal/service/catalog/models"
)

type CatalogService interface {
	GetSchedule(ctx context.Context, code string) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
