package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/internal/service/catalog/models"
)

// Service сервис чтения публичных данных бизнеса: услуги, расписание, занятость
type Service struct {
	provider     DataProvider
	defaultLoc   *time.Location
	maxRangeDays int
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(provider DataProvider, defaultLoc *time.Location, maxRangeDays int, logger Logger) *Service {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &Service{
		provider:     provider,
		defaultLoc:   defaultLoc,
		maxRangeDays: maxRangeDays,
		logger:       logger,
	}
}

// ListServices получает услуги бизнеса
func (s *Service) ListServices(ctx context.Context, code string) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: business=%s", code)

	business, err := s.getBusiness(ctx, "ListServices", code)
	if err != nil {
		return nil, err
	}

	services, err := s.provider.ListServices(ctx, code)
	if err != nil {
		return nil, s.mapProviderError("ListServices", code, err)
	}

	return models.FromDomainServices(business, services), nil
}

// GetSchedule получает недельное расписание бизнеса
func (s *Service) GetSchedule(ctx context.Context, code string) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: business=%s", code)

	business, err := s.getBusiness(ctx, "GetSchedule", code)
	if err != nil {
		return nil, err
	}

	schedule, err := s.provider.ListSchedule(ctx, code)
	if err != nil {
		return nil, s.mapProviderError("GetSchedule", code, err)
	}

	return models.FromDomainSchedule(code, business.LocationOr(s.defaultLoc), schedule), nil
}

// ListOccupied получает занятые интервалы бизнеса за период [from, to)
// Данные клиентов в ответ не попадают.
func (s *Service) ListOccupied(ctx context.Context, code string, from, to time.Time) (*models.OccupiedListResponse, error) {
	s.logger.Info("ListOccupied: business=%s, from=%s, to=%s", code, from.Format(time.RFC3339), to.Format(time.RFC3339))

	if !to.After(from) {
		return nil, fmt.Errorf("%w: range end must be after start", ErrInvalidInput)
	}
	if s.maxRangeDays > 0 && to.Sub(from) > time.Duration(s.maxRangeDays)*24*time.Hour {
		return nil, fmt.Errorf("%w: range is longer than %d days", ErrInvalidInput, s.maxRangeDays)
	}

	if _, err := s.getBusiness(ctx, "ListOccupied", code); err != nil {
		return nil, err
	}

	appointments, err := s.provider.ListAppointments(ctx, code, from, to)
	if err != nil {
		return nil, s.mapProviderError("ListOccupied", code, err)
	}

	return models.FromDomainAppointments(code, from, to, appointments), nil
}

func (s *Service) getBusiness(ctx context.Context, op, code string) (*domain.Business, error) {
	if !domain.IsValidBusinessCode(code) {
		return nil, fmt.Errorf("%w: invalid business code", ErrInvalidInput)
	}

	business, err := s.provider.GetBusiness(ctx, code)
	if err != nil {
		return nil, s.mapProviderError(op, code, err)
	}
	return business, nil
}

func (s *Service) mapProviderError(op, code string, err error) error {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		s.logger.Warn("%s: business=%s not found", op, code)
		return ErrBusinessNotFound
	case errors.Is(err, domain.ErrAuthExpired):
		s.logger.Warn("%s: session expired for business=%s", op, code)
		return ErrSessionExpired
	default:
		s.logger.Error("%s: provider error for business=%s: %v", op, code, err)
		return fmt.Errorf("%w: %s - provider error: %v", ErrInternal, op, err)
	}
}
