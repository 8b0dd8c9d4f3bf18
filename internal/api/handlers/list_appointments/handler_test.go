package list_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/turnate/booking-engine/internal/service/catalog"
	"github.com/turnate/booking-engine/internal/service/catalog/models"
	"github.com/turnate/booking-engine/pkg/logger"
)

type fakeCatalog struct {
	from, to time.Time
	err      error
}

func (f *fakeCatalog) ListOccupied(_ context.Context, code string, from, to time.Time) (*models.OccupiedListResponse, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return &models.OccupiedListResponse{BusinessCode: code, From: from, To: to}, nil
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/b/{code}/appointments", h.Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle(t *testing.T) {
	service := &fakeCatalog{}

	w := serve(NewHandler(service, logger.NewNop()),
		"/api/v1/b/peluqueria-ana/appointments?from=2025-06-02T00:00:00-03:00&to=2025-06-03T00:00:00-03:00")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC), service.from)
	assert.Equal(t, time.Date(2025, 6, 3, 3, 0, 0, 0, time.UTC), service.to)
}

func TestHandle_Errors(t *testing.T) {
	w := serve(NewHandler(&fakeCatalog{}, logger.NewNop()), "/api/v1/b/peluqueria-ana/appointments?from=2025-06-02")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(NewHandler(&fakeCatalog{err: catalog.ErrInvalidInput}, logger.NewNop()),
		"/api/v1/b/peluqueria-ana/appointments?from=2025-06-02T00:00:00Z&to=2025-06-01T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(NewHandler(&fakeCatalog{err: catalog.ErrBusinessNotFound}, logger.NewNop()),
		"/api/v1/b/otro-negocio/appointments?from=2025-06-02T00:00:00Z&to=2025-06-03T00:00:00Z")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(NewHandler(&fakeCatalog{err: catalog.ErrSessionExpired}, logger.NewNop()),
		"/api/v1/b/peluqueria-ana/appointments?from=2025-06-02T00:00:00Z&to=2025-06-03T00:00:00Z")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(NewHandler(&fakeCatalog{err: catalog.ErrInternal}, logger.NewNop()),
		"/api/v1/b/peluqueria-ana/appointments?from=2025-06-02T00:00:00Z&to=2025-06-03T00:00:00Z")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
