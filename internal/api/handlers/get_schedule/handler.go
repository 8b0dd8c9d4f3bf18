package get_schedule

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

// Handle GET /api/v1/b/{code}/schedule
// Публичный endpoint - недельное расписание, шаг уже приведен к эффективному
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	result, err := h.service.GetSchedule(r.Context(), code)
	if err != nil {
		h.logger.Warn("GET /b/{code}/schedule - Failed to get schedule: code=%s, error=%v", code, err)
		handlers.RespondCatalogError(w, err, "")
		return
	}

	h.logger.Info("GET /b/{code}/schedule - Schedule retrieved successfully: code=%s, blocks=%d", code, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
