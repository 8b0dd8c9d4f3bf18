package agenda

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
	appointmentRepo "github.com/turnate/booking-engine/internal/infra/storage/appointment"
	catalogRepo "github.com/turnate/booking-engine/internal/infra/storage/catalog"
	"github.com/turnate/booking-engine/pkg/txmanager"
)

// Service встроенный источник данных поверх PostgreSQL
// Является авторитетной точкой создания бронирований: непересечение
// интервалов перепроверяется внутри сериализуемой транзакции.
type Service struct {
	catalog      CatalogRepository
	appointments AppointmentRepository
	txManager    TransactionManager
	defaultLoc   *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	catalog CatalogRepository,
	appointments AppointmentRepository,
	txManager TransactionManager,
	defaultLoc *time.Location,
	logger Logger,
) *Service {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &Service{
		catalog:      catalog,
		appointments: appointments,
		txManager:    txManager,
		defaultLoc:   defaultLoc,
		logger:       logger,
	}
}

// GetBusiness получает бизнес по публичному коду
func (s *Service) GetBusiness(ctx context.Context, code string) (*domain.Business, error) {
	business, err := s.catalog.GetBusinessByCode(ctx, code)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			s.logger.Warn("GetBusiness: business code=%s not found", code)
			return nil, domain.ErrBusinessNotFound
		}
		s.logger.Error("GetBusiness: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetBusiness - repository error: %v", ErrInternal, err)
	}

	if business.Location == nil {
		business.Location = s.defaultLoc
	}

	return business, nil
}

// ListServices получает услуги бизнеса
func (s *Service) ListServices(ctx context.Context, code string) ([]domain.Service, error) {
	business, err := s.GetBusiness(ctx, code)
	if err != nil {
		return nil, err
	}

	services, err := s.catalog.ListServices(ctx, business.ID)
	if err != nil {
		s.logger.Error("ListServices: repository error for business=%d: %v", business.ID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return services, nil
}

// ListSchedule получает недельное расписание бизнеса
func (s *Service) ListSchedule(ctx context.Context, code string) (domain.WeeklySchedule, error) {
	business, err := s.GetBusiness(ctx, code)
	if err != nil {
		return nil, err
	}

	blocks, err := s.catalog.ListScheduleBlocks(ctx, business.ID)
	if err != nil {
		s.logger.Error("ListSchedule: repository error for business=%d: %v", business.ID, err)
		return nil, fmt.Errorf("%w: ListSchedule - repository error: %v", ErrInternal, err)
	}

	return domain.NewWeeklySchedule(blocks), nil
}

// ListAppointments получает активные бронирования, пересекающиеся с [from, to)
func (s *Service) ListAppointments(ctx context.Context, code string, from, to time.Time) ([]domain.Appointment, error) {
	business, err := s.GetBusiness(ctx, code)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListInRange(ctx, business.ID, from, to)
	if err != nil {
		s.logger.Error("ListAppointments: repository error for business=%d: %v", business.ID, err)
		return nil, fmt.Errorf("%w: ListAppointments - repository error: %v", ErrInternal, err)
	}

	return appointments, nil
}

// CreateAppointment создает бронирование
// Внутри SERIALIZABLE транзакции блокирует активные бронирования дня,
// перепроверяет пересечение и вставляет запись. Любой конфликт
// (пересечение, ограничение БД, ошибка сериализации) возвращается как domain.ErrConflict.
func (s *Service) CreateAppointment(ctx context.Context, req domain.BookingRequest) (*domain.Appointment, error) {
	s.logger.Info("CreateAppointment: business=%s service=%d start=%s",
		req.BusinessCode, req.ServiceID, req.Start.Format(time.RFC3339))

	business, err := s.GetBusiness(ctx, req.BusinessCode)
	if err != nil {
		return nil, err
	}

	services, err := s.catalog.ListServices(ctx, business.ID)
	if err != nil {
		s.logger.Error("CreateAppointment: failed to list services for business=%d: %v", business.ID, err)
		return nil, fmt.Errorf("%w: CreateAppointment - list services: %v", ErrInternal, err)
	}

	service, ok := domain.FindService(services, req.ServiceID)
	if !ok {
		s.logger.Warn("CreateAppointment: service=%d not found for business=%d", req.ServiceID, business.ID)
		return nil, domain.ErrServiceNotFound
	}

	if !req.End.After(req.Start) {
		return nil, &domain.ValidationError{Detail: "el horario de fin debe ser posterior al de inicio"}
	}
	if req.End.Sub(req.Start) != time.Duration(service.DurationMinutes)*time.Minute {
		return nil, &domain.ValidationError{Detail: "la duración no coincide con la del servicio"}
	}

	requested := domain.Interval{Start: req.Start, End: req.End}
	dayStart := startOfDay(req.Start.In(business.Location))
	// Интервал может пересекать полночь
	dayEnd := startOfDay(req.End.In(business.Location)).AddDate(0, 0, 1)

	var created *domain.Appointment
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := s.appointments.ListInRange(ctx, business.ID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		for i := range existing {
			if existing[i].IsActive() && existing[i].Interval().Overlaps(requested) {
				return domain.ErrConflict
			}
		}

		created, err = s.appointments.Create(ctx, business.ID, &domain.Appointment{
			ServiceID:   req.ServiceID,
			Start:       req.Start,
			End:         req.End,
			Status:      domain.StatusConfirmed,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
		})
		return err
	})
	if err != nil {
		if isConflict(err) {
			s.logger.Warn("CreateAppointment: slot %s already taken for business=%d",
				req.Start.Format(time.RFC3339), business.ID)
			return nil, fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		s.logger.Error("CreateAppointment: failed to create appointment for business=%d: %v", business.ID, err)
		return nil, fmt.Errorf("%w: CreateAppointment - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAppointment: created appointment id=%d for business=%d", created.ID, business.ID)
	return created, nil
}

// CancelAppointment отменяет бронирование по запросу клиента
// Клиент подтверждает владение бронированием телефоном или email,
// указанными при создании.
func (s *Service) CancelAppointment(ctx context.Context, code string, id int64, contact string) error {
	s.logger.Info("CancelAppointment: business=%s appointment=%d", code, id)

	business, err := s.GetBusiness(ctx, code)
	if err != nil {
		return err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.appointments.GetByID(ctx, business.ID, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return domain.ErrAppointmentNotFound
			}
			return err
		}

		if !matchesContact(appointment, contact) {
			return ErrAccessDenied
		}

		if !appointment.CanBeCancelled() {
			return ErrCannotCancel
		}

		return s.appointments.Cancel(ctx, business.ID, id)
	})

	switch {
	case err == nil:
		s.logger.Info("CancelAppointment: appointment=%d cancelled", id)
		return nil
	case errors.Is(err, domain.ErrAppointmentNotFound), errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		s.logger.Warn("CancelAppointment: appointment=%d not found for business=%d", id, business.ID)
		return domain.ErrAppointmentNotFound
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrCannotCancel):
		s.logger.Warn("CancelAppointment: appointment=%d: %v", id, err)
		return err
	default:
		s.logger.Error("CancelAppointment: failed to cancel appointment=%d: %v", id, err)
		return fmt.Errorf("%w: CancelAppointment - transaction error: %v", ErrInternal, err)
	}
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, appointmentRepo.ErrOverlap) ||
		errors.Is(err, appointmentRepo.ErrConcurrentUpdate) ||
		errors.Is(err, txmanager.ErrSerialization)
}

func matchesContact(appointment *domain.Appointment, contact string) bool {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return false
	}
	if appointment.ClientEmail != "" && strings.EqualFold(appointment.ClientEmail, contact) {
		return true
	}
	phone := normalizePhone(contact)
	return phone != "" && normalizePhone(appointment.ClientPhone) == phone
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
