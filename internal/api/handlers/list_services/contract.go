package list_services

import (
	"context"

	"github.com/turnate/booking-engine/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context, code string) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
