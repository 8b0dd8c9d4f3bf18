package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/internal/slots"
)

// UseCase use case для создания бронирования
type UseCase struct {
	provider     DataProvider
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(provider DataProvider, settings Settings, logger Logger) *UseCase {
	return &UseCase{
		provider:     provider,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Перед отправкой повторно проверяет слот по текущему списку бронирований.
// Окончательное решение о конфликте принимает источник данных: бронирование
// отправляется ровно один раз, без повторов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateBooking: business=%s, service=%d, start=%s, end=%s",
		req.BusinessCode, req.ServiceID, req.Start.UTC().Format(time.RFC3339), req.End.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес и его часовой пояс
	business, err := uc.provider.GetBusiness(ctx, req.BusinessCode)
	if err != nil {
		return nil, uc.mapReadError("get business", err)
	}
	loc := business.LocationOr(uc.settings.DefaultLocation)

	// 4. Получаем услугу и проверяем длительность интервала
	services, err := uc.provider.ListServices(ctx, req.BusinessCode)
	if err != nil {
		return nil, uc.mapReadError("list services", err)
	}

	service, ok := domain.FindService(services, req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateBooking: service id=%d not found in business=%s", req.ServiceID, req.BusinessCode)
		return nil, ErrServiceNotFound
	}

	if err := validateDuration(req, service); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Проверяем дату
	day := startOfDay(req.Start.In(loc))
	if err := validateDate(day, now, uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 6. Интервал должен совпадать со слотом расписания
	schedule, err := uc.provider.ListSchedule(ctx, req.BusinessCode)
	if err != nil {
		return nil, uc.mapReadError("list schedule", err)
	}

	candidate, ok := findCandidate(slots.ExpandDay(day, schedule, service.DurationMinutes), req.Start, req.End)
	if !ok {
		uc.logger.Warn("CreateBooking: %s is not a schedule slot for service=%d",
			req.Start.In(loc).Format(domain.TimeFormat), req.ServiceID)
		return nil, ErrInvalidTimeSlot
	}

	if candidate.Start.Before(now) {
		uc.logger.Warn("CreateBooking: slot %s already started", candidate.Start.Format(time.RFC3339))
		return nil, ErrTooLateToBook
	}

	// 7. Предварительная проверка по текущим бронированиям
	appointments, err := uc.provider.ListAppointments(ctx, req.BusinessCode, day, day.AddDate(0, 0, 1))
	switch {
	case err == nil:
		idx := slots.BuildOccupancyIndex(appointments, loc)
		if !slots.IsOfferable(candidate, idx.On(candidate.Start), now) {
			uc.logger.Warn("CreateBooking: slot %s is already taken", candidate.Start.Format(time.RFC3339))
			return nil, ErrSlotUnavailable
		}
	case errors.Is(err, domain.ErrAuthExpired):
		return nil, uc.mapReadError("list appointments", err)
	default:
		// Проверка рекомендательная, конфликт все равно отловит источник данных
		uc.logger.Warn("CreateBooking: pre-check skipped, failed to list appointments: %v", err)
	}

	// 8. Создаем бронирование (один вызов, без повторов)
	created, err := uc.provider.CreateAppointment(ctx, domain.BookingRequest{
		BusinessCode: req.BusinessCode,
		ServiceID:    req.ServiceID,
		Start:        candidate.Start,
		End:          candidate.End,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
	})
	if err != nil {
		return nil, uc.mapCreateError(err)
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", created.ID)

	resp := &Response{
		ID:              created.ID,
		ServiceID:       req.ServiceID,
		ServiceName:     service.Name,
		Start:           candidate.Start,
		End:             candidate.End,
		DurationMinutes: service.DurationMinutes,
		Status:          string(created.Status),
		ClientName:      req.ClientName,
		Date:            day,
	}

	// 9. Перечитываем бронирования дня и пересчитываем свободные слоты
	remaining, err := uc.refreshDay(ctx, req.BusinessCode, day, loc, schedule, service.DurationMinutes, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: appointment id=%d created, but refresh failed: %v", created.ID, err)
		return resp, nil
	}

	resp.RemainingSlots = remaining
	resp.Refreshed = true

	return resp, nil
}

func (uc *UseCase) refreshDay(
	ctx context.Context,
	code string,
	day time.Time,
	loc *time.Location,
	schedule domain.WeeklySchedule,
	durationMinutes int,
	now time.Time,
) ([]Slot, error) {
	appointments, err := uc.provider.ListAppointments(ctx, code, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	available, err := slots.Available(day, slots.Input{
		Schedule:        schedule,
		DurationMinutes: durationMinutes,
		Occupancy:       slots.BuildOccupancyIndex(appointments, loc),
		Now:             now,
	})
	if err != nil {
		return nil, err
	}

	result := make([]Slot, len(available))
	for i, s := range available {
		result[i] = Slot{Start: s.Start, End: s.End}
	}
	return result, nil
}

func (uc *UseCase) mapReadError(step string, err error) error {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		uc.logger.Warn("CreateBooking: %s: business not found", step)
		return ErrBusinessNotFound
	case errors.Is(err, domain.ErrAuthExpired):
		uc.logger.Warn("CreateBooking: %s: session expired", step)
		return ErrSessionExpired
	default:
		uc.logger.Error("CreateBooking: failed to %s: %v", step, err)
		return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
	}
}

// mapCreateError переводит ошибку источника данных в ошибку use case
func (uc *UseCase) mapCreateError(err error) error {
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrConflict):
		uc.logger.Warn("CreateBooking: slot was taken concurrently: %v", err)
		return ErrSlotUnavailable
	case errors.Is(err, domain.ErrAuthExpired):
		uc.logger.Warn("CreateBooking: session expired")
		return ErrSessionExpired
	case errors.As(err, &validationErr):
		uc.logger.Warn("CreateBooking: rejected by backend: %s", validationErr.Detail)
		return &RejectedError{Detail: validationErr.Detail}
	case errors.Is(err, domain.ErrBusinessNotFound):
		return ErrBusinessNotFound
	case errors.Is(err, domain.ErrServiceNotFound):
		return ErrServiceNotFound
	default:
		uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
		return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}
}
