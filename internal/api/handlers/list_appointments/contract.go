package list_appointments

import (
	"context"
	"time"

	"github.com/turnate/booking-engine/internal/service/catalog/models"
)

type CatalogService interface {
	ListOccupied(ctx context.Context, code string, from, to time.Time) (*models.OccupiedListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
