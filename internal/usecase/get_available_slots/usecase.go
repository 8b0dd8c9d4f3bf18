package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/internal/slots"
)

// UseCase use case для получения доступных слотов
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

// Execute выполняет use case получения доступных слотов
// Слоты строятся из недельного расписания, из них вычитаются активные
// бронирования и прошедшее время. Если To не задан, берется один день From.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: business=%s, service=%d, from=%s, to=%s",
		req.BusinessCode, req.ServiceID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 2. Получаем бизнес и его часовой пояс
	business, err := uc.provider.GetBusiness(ctx, req.BusinessCode)
	if err != nil {
		return nil, uc.mapProviderError("get business", err)
	}
	loc := business.LocationOr(uc.settings.DefaultLocation)

	// 3. Получаем услугу
	services, err := uc.provider.ListServices(ctx, req.BusinessCode)
	if err != nil {
		return nil, uc.mapProviderError("list services", err)
	}

	service, ok := domain.FindService(services, req.ServiceID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service id=%d not found in business=%s", req.ServiceID, req.BusinessCode)
		return nil, ErrServiceNotFound
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%d has duration=%d", service.ID, service.DurationMinutes)
		return nil, ErrInvalidServiceDuration
	}

	// 4. Проверяем период
	now := uc.timeProvider.Now()
	first := dateIn(req.From, loc)
	last := first
	if !req.To.IsZero() {
		last = dateIn(req.To, loc)
	}

	if err := validateRange(first, last, now, uc.settings); err != nil {
		uc.logger.Warn("GetAvailableSlots: range validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем расписание
	schedule, err := uc.provider.ListSchedule(ctx, req.BusinessCode)
	if err != nil {
		return nil, uc.mapProviderError("list schedule", err)
	}

	// 6. Получаем бронирования за период
	appointments, err := uc.provider.ListAppointments(ctx, req.BusinessCode, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, uc.mapProviderError("list appointments", err)
	}

	// 7. Считаем доступность
	days, err := slots.AvailableRange(first, last, uc.settings.MaxRangeDays, slots.Input{
		Schedule:        schedule,
		DurationMinutes: service.DurationMinutes,
		Occupancy:       slots.BuildOccupancyIndex(appointments, loc),
		Now:             now,
	})
	if err != nil {
		if errors.Is(err, slots.ErrRangeTooLong) {
			return nil, fmt.Errorf("%w: %v", ErrRangeTooLong, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to compute availability: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	resultDays := toDays(days)
	// Дни за пределом advanceBookingDays забронировать нельзя
	if maxDate, ok := advanceLimit(now, loc, uc.settings.AdvanceBookingDays); ok {
		resultDays = closeDaysAfter(resultDays, maxDate)
	}

	resp := &Response{
		BusinessCode:    req.BusinessCode,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Location:        loc,
		Days:            resultDays,
	}

	uc.logger.Info("GetAvailableSlots: %d slots over %d days for business=%s, service=%d",
		resp.TotalSlots(), len(resp.Days), req.BusinessCode, req.ServiceID)

	return resp, nil
}

func (uc *UseCase) mapProviderError(step string, err error) error {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		uc.logger.Warn("GetAvailableSlots: %s: business not found", step)
		return ErrBusinessNotFound
	case errors.Is(err, domain.ErrAuthExpired):
		uc.logger.Warn("GetAvailableSlots: %s: session expired", step)
		return ErrSessionExpired
	default:
		uc.logger.Error("GetAvailableSlots: failed to %s: %v", step, err)
		return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
	}
}

func toDays(days []slots.Day) []Day {
	result := make([]Day, len(days))
	for i, d := range days {
		result[i] = Day{Date: d.Date, Slots: make([]Slot, len(d.Slots))}
		for j, s := range d.Slots {
			result[i].Slots[j] = Slot{Start: s.Start, End: s.End}
		}
	}
	return result
}
