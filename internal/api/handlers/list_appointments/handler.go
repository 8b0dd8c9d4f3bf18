package list_appointments

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/turnate/booking-engine/internal/api/handlers"
)

const msgInvalidRange = "Indicá from y to en formato ISO 8601, con from anterior a to."

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/b/{code}/appointments
// Query params: from, to (ISO 8601). Возвращает только занятые интервалы, без данных клиентов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	from, to, err := parseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /b/{code}/appointments - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.ListOccupied(r.Context(), code, from, to)
	if err != nil {
		h.logger.Warn("GET /b/{code}/appointments - Failed to list occupied intervals: code=%s, error=%v", code, err)
		handlers.RespondCatalogError(w, err, msgInvalidRange)
		return
	}

	h.logger.Info("GET /b/{code}/appointments - Intervals retrieved successfully: code=%s, count=%d", code, len(result.Intervals))
	handlers.RespondJSON(w, http.StatusOK, result)
}
