package list_services

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/turnate/booking-engine/internal/api/handlers"
)

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

// Handle GET /api/v1/b/{code}/services
// Публичный endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	result, err := h.service.ListServices(r.Context(), code)
	if err != nil {
		h.logger.Warn("GET /b/{code}/services - Failed to list services: code=%s, error=%v", code, err)
		handlers.RespondCatalogError(w, err, "")
		return
	}

	h.logger.Info("GET /b/{code}/services - Services retrieved successfully: code=%s, count=%d", code, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
