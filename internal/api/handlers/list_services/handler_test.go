package list_services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnate/booking-engine/internal/service/catalog"
	"github.com/turnate/booking-engine/internal/service/catalog/models"
	"github.com/turnate/booking-engine/pkg/logger"
)

type fakeCatalog struct {
	result *models.ServiceListResponse
	err    error
	code   string
}

func (f *fakeCatalog) ListServices(_ context.Context, code string) (*models.ServiceListResponse, error) {
	f.code = code
	return f.result, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/b/{code}/services", h.Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle(t *testing.T) {
	service := &fakeCatalog{result: &models.ServiceListResponse{
		BusinessCode: "peluqueria-ana",
		BusinessName: "Peluquería Ana",
		Services: []models.ServiceResponse{
			{ID: 1, Name: "Corte", DurationMinutes: 30, Price: 8000},
		},
	}}

	w := serve(NewHandler(service, logger.NewNop()), "/api/v1/b/peluqueria-ana/services")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "peluqueria-ana", service.code)

	var body models.ServiceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Services, 1)
	assert.Equal(t, "Corte", body.Services[0].Name)
	assert.Equal(t, 30, body.Services[0].DurationMinutes)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid code", err: catalog.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "not found", err: catalog.ErrBusinessNotFound, status: http.StatusNotFound},
		{name: "session expired", err: catalog.ErrSessionExpired, status: http.StatusUnauthorized},
		{name: "backend failure", err: catalog.ErrInternal, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewHandler(&fakeCatalog{err: tt.err}, logger.NewNop()), "/api/v1/b/peluqueria-ana/services")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
