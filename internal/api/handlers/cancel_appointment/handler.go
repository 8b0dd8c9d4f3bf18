package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/turnate/booking-engine/internal/api/handlers"
	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/internal/service/agenda"
)

const (
	msgInvalidAppointmentID = "El turno indicado no es válido."
	msgInvalidRequestBody   = "Indicá el teléfono o email con el que reservaste."
	msgNotFound             = "No encontramos el turno."
	msgForbidden            = "Los datos de contacto no coinciden con el turno."
	msgCannotCancel         = "Este turno ya no se puede cancelar."
	msgCancelled            = "Tu turno fue cancelado."
)

type Handler struct {
	service AgendaService
	logger  Logger
}

func NewHandler(service AgendaService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/b/{code}/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := vars["code"]

	// Извлекаем appointmentId из URL
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PATCH /b/{code}/appointments/{id}/cancel - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Декодируем body
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || strings.TrimSpace(req.Contact) == "" {
		h.logger.Warn("PATCH /b/{code}/appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отменяем бронирование
	err = h.service.CancelAppointment(r.Context(), code, appointmentID, req.Contact)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound), errors.Is(err, domain.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, agenda.ErrAccessDenied):
			h.logger.Warn("PATCH /b/{code}/appointments/{id}/cancel - Contact mismatch: appointment_id=%d", appointmentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, agenda.ErrCannotCancel):
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /b/{code}/appointments/{id}/cancel - Failed to cancel: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /b/{code}/appointments/{id}/cancel - Appointment cancelled: code=%s, appointment_id=%d", code, appointmentID)
	handlers.RespondJSON(w, http.StatusOK, CancelAppointmentResponse{
		ID:      appointmentID,
		Status:  string(domain.StatusCancelled),
		Message: msgCancelled,
	})
}
