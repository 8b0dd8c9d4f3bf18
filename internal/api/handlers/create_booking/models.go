package create_booking

import (
	"fmt"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
	createBooking "github.com/turnate/booking-engine/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64  `json:"serviceId"`
	Start       string `json:"start"` // "2025-06-02T12:00:00Z"
	End         string `json:"end"`   // "2025-06-02T12:30:00Z"
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64       `json:"id"`
	ServiceID       int64       `json:"serviceId"`
	ServiceName     string      `json:"serviceName"`
	Start           string      `json:"start"`
	End             string      `json:"end"`
	DurationMinutes int         `json:"durationMinutes"`
	Status          string      `json:"status"`
	ClientName      string      `json:"clientName"`
	Message         string      `json:"message"`
	Date            string      `json:"date"`
	RemainingSlots  []SlotModel `json:"remainingSlots"`
	Refreshed       bool        `json:"refreshed"`
}

// SlotModel свободный слот дня бронирования
type SlotModel struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const msgBooked = "¡Listo! Tu turno quedó reservado."

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(code string) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &createBooking.Request{
		BusinessCode: code,
		ServiceID:    r.ServiceID,
		Start:        start.UTC(),
		End:          end.UTC(),
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		ClientEmail:  r.ClientEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	slots := make([]SlotModel, len(resp.RemainingSlots))
	for i, s := range resp.RemainingSlots {
		slots[i] = SlotModel{
			Start: s.Start.UTC().Format(time.RFC3339),
			End:   s.End.UTC().Format(time.RFC3339),
		}
	}

	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Start:           resp.Start.UTC().Format(time.RFC3339),
		End:             resp.End.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ClientName:      resp.ClientName,
		Message:         msgBooked,
		Date:            resp.Date.Format(domain.DateFormat),
		RemainingSlots:  slots,
		Refreshed:       resp.Refreshed,
	}
}
