package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/turnate/booking-engine/internal/api/handlers"
	getAvailableSlots "github.com/turnate/booking-engine/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "El servicio indicado no es válido."
	msgMissingServiceID = "Falta indicar el servicio."
	msgMissingDate      = "Indicá una fecha (date) o un rango (from y to)."
	msgInvalidDate      = "Fecha inválida, se espera el formato AAAA-MM-DD."
	msgInvalidParams    = "Los parámetros de la consulta no son válidos."
	msgBusinessNotFound = "No encontramos el negocio."
	msgServiceNotFound  = "No encontramos el servicio elegido."
	msgRangeTooLong     = "El rango de fechas es demasiado largo."
	msgDateTooFar       = "Todavía no se pueden reservar turnos para esa fecha."
	msgSessionExpired   = "La sesión expiró, volvé a iniciar sesión."
	msgBackendFailure   = "No pudimos consultar la disponibilidad. Intentá de nuevo en unos minutos."
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	observer SlotsObserver
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, observer SlotsObserver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		observer: observer,
		logger:   logger,
	}
}

// Handle GET /api/v1/b/{code}/available-slots
// Query params: serviceId (required), date (YYYY-MM-DD) или from + to (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	query := r.URL.Query()

	// Извлекаем serviceId из query параметров
	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /b/{code}/available-slots - Missing service ID: code=%s", code)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /b/{code}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr, fromStr, toStr := query.Get("date"), query.Get("from"), query.Get("to")
	if dateStr == "" && (fromStr == "" || toStr == "") {
		h.logger.Warn("GET /b/{code}/available-slots - Missing date: code=%s", code)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(code, serviceID, dateStr, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /b/{code}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /b/{code}/available-slots - Invalid input: code=%s, error=%v", code, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /b/{code}/available-slots - Business not found: code=%s", code)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /b/{code}/available-slots - Service not found: code=%s, service_id=%d", code, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrRangeTooLong):
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrSessionExpired):
			handlers.RespondUnauthorized(w, msgSessionExpired)

		case errors.Is(err, getAvailableSlots.ErrInvalidServiceDuration):
			h.logger.Error("GET /b/{code}/available-slots - Misconfigured service: code=%s, service_id=%d", code, serviceID)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("GET /b/{code}/available-slots - Failed to get slots: code=%s, service_id=%d, error=%v",
				code, serviceID, err)
			handlers.RespondBadGateway(w, msgBackendFailure)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	if h.observer != nil {
		h.observer.ObserveSlots(result.TotalSlots())
	}

	h.logger.Info("GET /b/{code}/available-slots - Slots retrieved successfully: code=%s, service_id=%d, days=%d, slots_count=%d",
		code, serviceID, len(result.Days), result.TotalSlots())
	handlers.RespondJSON(w, http.StatusOK, response)
}
