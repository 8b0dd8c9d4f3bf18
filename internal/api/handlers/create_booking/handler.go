package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/turnate/booking-engine/internal/api/handlers"
	createBooking "github.com/turnate/booking-engine/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Los datos enviados no son válidos."
	msgInvalidTime        = "Horario inválido, se espera ISO 8601 en UTC."
)

// Исходы бронирования для метрик
const (
	outcomeCreated     = "created"
	outcomeConflict    = "conflict"
	outcomeRejected    = "rejected"
	outcomeInvalid     = "invalid"
	outcomeAuthExpired = "auth_expired"
	outcomeError       = "error"
)

type Handler struct {
	useCase  CreateBookingUseCase
	observer BookingObserver
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, observer BookingObserver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		observer: observer,
		logger:   logger,
	}
}

// Handle POST /api/v1/b/{code}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /b/{code}/appointments - Invalid request body: %v", err)
		h.observe(outcomeInvalid)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(code)
	if err != nil {
		h.logger.Warn("POST /b/{code}/appointments - Failed to parse request: %v", err)
		h.observe(outcomeInvalid)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		message := createBooking.UserMessage(err)

		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /b/{code}/appointments - Slot not available: code=%s, service_id=%d", code, req.ServiceID)
			h.observe(outcomeConflict)
			handlers.RespondConflict(w, message)

		case errors.Is(err, createBooking.ErrSessionExpired):
			h.logger.Warn("POST /b/{code}/appointments - Session expired: code=%s", code)
			h.observe(outcomeAuthExpired)
			handlers.RespondUnauthorized(w, message)

		case errors.Is(err, createBooking.ErrRejected):
			h.logger.Warn("POST /b/{code}/appointments - Rejected by backend: code=%s, error=%v", code, err)
			h.observe(outcomeRejected)
			handlers.RespondUnprocessable(w, message)

		case errors.Is(err, createBooking.ErrBusinessNotFound),
			errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /b/{code}/appointments - Not found: code=%s, service_id=%d, error=%v", code, req.ServiceID, err)
			h.observe(outcomeInvalid)
			handlers.RespondNotFound(w, message)

		case errors.Is(err, createBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrInvalidTimeSlot),
			errors.Is(err, createBooking.ErrTooLateToBook),
			errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /b/{code}/appointments - Invalid booking: code=%s, error=%v", code, err)
			h.observe(outcomeInvalid)
			handlers.RespondBadRequest(w, message)

		default:
			h.logger.Error("POST /b/{code}/appointments - Failed to create booking: code=%s, service_id=%d, error=%v",
				code, req.ServiceID, err)
			h.observe(outcomeError)
			handlers.RespondBadGateway(w, message)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)
	h.observe(outcomeCreated)

	h.logger.Info("POST /b/{code}/appointments - Booking created successfully: appointment_id=%d, code=%s, service_id=%d",
		result.ID, code, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveBooking(outcome)
	}
}
