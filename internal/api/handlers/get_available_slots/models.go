package get_available_slots

import (
	"time"

	"github.com/turnate/booking-engine/internal/domain"
	getAvailableSlots "github.com/turnate/booking-engine/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BusinessCode    string         `json:"businessCode"`
	ServiceID       int64          `json:"serviceId"`
	ServiceName     string         `json:"serviceName"`
	DurationMinutes int            `json:"durationMinutes"`
	TimeZone        string         `json:"timeZone"`
	Days            []AvailableDay `json:"days"`
}

// AvailableDay слоты на одну дату
type AvailableDay struct {
	Date  string          `json:"date"` // YYYY-MM-DD в часовом поясе бизнеса
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start     string `json:"start"`     // ISO 8601, UTC
	End       string `json:"end"`       // ISO 8601, UTC
	LocalTime string `json:"localTime"` // HH:MM в часовом поясе бизнеса
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]AvailableDay, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]AvailableSlot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = AvailableSlot{
				Start:     slot.Start.UTC().Format(time.RFC3339),
				End:       slot.End.UTC().Format(time.RFC3339),
				LocalTime: slot.Start.In(resp.Location).Format(domain.TimeFormat),
			}
		}
		days[i] = AvailableDay{Date: day.Date.Format(domain.DateFormat), Slots: slots}
	}

	return &AvailableSlotsResponse{
		BusinessCode:    resp.BusinessCode,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		TimeZone:        resp.Location.String(),
		Days:            days,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// Передается либо date, либо пара from/to.
func ToUseCaseRequest(code string, serviceID int64, dateStr, fromStr, toStr string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{
		BusinessCode: code,
		ServiceID:    serviceID,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.From = date
		return req, nil
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	req.From, req.To = from, to
	return req, nil
}
