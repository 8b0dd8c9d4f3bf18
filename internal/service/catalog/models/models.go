package models

import (
	"time"

	"github.com/turnate/booking-engine/internal/domain"
)

// Response модели

// ServiceResponse услуга бизнеса
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	BusinessCode string            `json:"businessCode"`
	BusinessName string            `json:"businessName"`
	Services     []ServiceResponse `json:"services"`
}

// ScheduleBlockResponse блок недельного расписания
type ScheduleBlockResponse struct {
	DayOfWeek   int    `json:"dayOfWeek"` // 0 = воскресенье
	Start       string `json:"start"`     // HH:MM
	End         string `json:"end"`       // HH:MM
	StepMinutes int    `json:"stepMinutes"`
}

// ScheduleResponse недельное расписание бизнеса
type ScheduleResponse struct {
	BusinessCode string                  `json:"businessCode"`
	TimeZone     string                  `json:"timeZone"`
	Blocks       []ScheduleBlockResponse `json:"blocks"`
}

// OccupiedIntervalResponse занятый интервал без данных клиента
type OccupiedIntervalResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ServiceID int64     `json:"serviceId"`
}

// OccupiedListResponse занятые интервалы за период
type OccupiedListResponse struct {
	BusinessCode string                     `json:"businessCode"`
	From         time.Time                  `json:"from"`
	To           time.Time                  `json:"to"`
	Intervals    []OccupiedIntervalResponse `json:"intervals"`
}

// Методы конвертации

// FromDomainServices конвертирует услуги в DTO
func FromDomainServices(business *domain.Business, services []domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		BusinessCode: business.Code,
		BusinessName: business.Name,
		Services:     make([]ServiceResponse, len(services)),
	}
	for i, s := range services {
		resp.Services[i] = ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}
	return resp
}

// FromDomainSchedule конвертирует расписание в DTO
// Шаг блока приводится к эффективному значению.
func FromDomainSchedule(code string, loc *time.Location, schedule domain.WeeklySchedule) *ScheduleResponse {
	blocks := schedule.Blocks()
	resp := &ScheduleResponse{
		BusinessCode: code,
		TimeZone:     loc.String(),
		Blocks:       make([]ScheduleBlockResponse, len(blocks)),
	}
	for i, b := range blocks {
		resp.Blocks[i] = ScheduleBlockResponse{
			DayOfWeek:   int(b.Weekday),
			Start:       b.Start.String(),
			End:         b.End.String(),
			StepMinutes: b.EffectiveStep(),
		}
	}
	return resp
}

// FromDomainAppointments конвертирует активные бронирования в занятые интервалы
func FromDomainAppointments(code string, from, to time.Time, appointments []domain.Appointment) *OccupiedListResponse {
	resp := &OccupiedListResponse{
		BusinessCode: code,
		From:         from,
		To:           to,
		Intervals:    make([]OccupiedIntervalResponse, 0, len(appointments)),
	}
	for i := range appointments {
		a := &appointments[i]
		if !a.IsActive() {
			continue
		}
		resp.Intervals = append(resp.Intervals, OccupiedIntervalResponse{
			Start:     a.Start.UTC(),
			End:       a.End.UTC(),
			ServiceID: a.ServiceID,
		})
	}
	return resp
}
