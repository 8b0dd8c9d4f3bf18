package turnosapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/pkg/types"
)

// Нормализация слабо типизированных записей бэкенда выполняется только здесь;
// дальше по коду ходят доменные типы.

var statusAliases = map[string]domain.AppointmentStatus{
	"pendiente":  domain.StatusPending,
	"pending":    domain.StatusPending,
	"confirmado": domain.StatusConfirmed,
	"confirmada": domain.StatusConfirmed,
	"confirmed":  domain.StatusConfirmed,
	"reservado":  domain.StatusConfirmed,
	"completado": domain.StatusCompleted,
	"completada": domain.StatusCompleted,
	"completed":  domain.StatusCompleted,
	"cancelado":  domain.StatusCancelled,
	"cancelada":  domain.StatusCancelled,
	"cancelled":  domain.StatusCancelled,
	"canceled":   domain.StatusCancelled,
}

func normalizeBusiness(dto businessDTO, code string) (*domain.Business, error) {
	business := &domain.Business{
		ID:   dto.ID.value,
		Code: dto.Code,
		Name: dto.Name,
	}
	if business.Code == "" {
		business.Code = code
	}

	if tz := strings.TrimSpace(dto.TimeZone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown zona_horaria %q", ErrInvalidResponse, tz)
		}
		business.Location = loc
	}

	return business, nil
}

func normalizeService(dto serviceDTO) (domain.Service, error) {
	if !dto.ID.set {
		return domain.Service{}, fmt.Errorf("%w: servicio without id", ErrInvalidResponse)
	}

	duration := dto.Duration
	if !duration.set {
		duration = dto.DurationMinutes
	}
	if !duration.set || duration.value <= 0 {
		return domain.Service{}, fmt.Errorf("%w: servicio id=%d has no positive duracion", ErrInvalidResponse, dto.ID.value)
	}

	return domain.Service{
		ID:              dto.ID.value,
		Name:            dto.Name,
		DurationMinutes: int(duration.value),
		Price:           float64(dto.Price),
	}, nil
}

func normalizeScheduleBlock(dto scheduleDTO) (domain.WeeklyScheduleBlock, error) {
	if !dto.Weekday.set || dto.Weekday.value < 0 || dto.Weekday.value > 6 {
		return domain.WeeklyScheduleBlock{}, fmt.Errorf("%w: unknown dia_semana %d", ErrInvalidResponse, dto.Weekday.value)
	}

	start, err := types.NewTimeStringFromString(firstNonEmpty(dto.From, dto.Start))
	if err != nil {
		return domain.WeeklyScheduleBlock{}, fmt.Errorf("%w: horario start: %v", ErrInvalidResponse, err)
	}

	end, err := types.NewTimeStringFromString(firstNonEmpty(dto.To, dto.End))
	if err != nil {
		return domain.WeeklyScheduleBlock{}, fmt.Errorf("%w: horario end: %v", ErrInvalidResponse, err)
	}

	return domain.WeeklyScheduleBlock{
		Weekday:     time.Weekday(dto.Weekday.value),
		Start:       start,
		End:         end,
		StepMinutes: int(dto.Interval.value),
	}, nil
}

func normalizeAppointment(dto appointmentDTO) (domain.Appointment, error) {
	rawStart := firstNonEmpty(dto.Start, dto.From, dto.DateTime)
	if rawStart == "" {
		return domain.Appointment{}, fmt.Errorf("%w: turno id=%d without start", ErrInvalidResponse, dto.ID.value)
	}

	start, err := parseTimestamp(rawStart)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("%w: turno id=%d start: %v", ErrInvalidResponse, dto.ID.value, err)
	}

	var end time.Time
	if rawEnd := firstNonEmpty(dto.End, dto.To); rawEnd != "" {
		end, err = parseTimestamp(rawEnd)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("%w: turno id=%d end: %v", ErrInvalidResponse, dto.ID.value, err)
		}
	} else {
		minutes := domain.DefaultAppointmentDurationMinutes
		if dto.Duration.set && dto.Duration.value > 0 {
			minutes = int(dto.Duration.value)
		}
		end = start.Add(time.Duration(minutes) * time.Minute)
	}

	return domain.Appointment{
		ID:          dto.ID.value,
		ServiceID:   dto.ServiceID.value,
		Start:       start,
		End:         end,
		Status:      normalizeStatus(dto.Status),
		ClientName:  dto.ClientName,
		ClientPhone: dto.ClientPhone,
		ClientEmail: dto.ClientEmail,
	}, nil
}

// normalizeStatus неизвестный или пустой статус считается подтвержденным
func normalizeStatus(raw string) domain.AppointmentStatus {
	if status, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return status
	}
	return domain.StatusConfirmed
}

// parseTimestamp принимает только ISO 8601 с указанием смещения (Z или ±hh:mm)
func parseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
