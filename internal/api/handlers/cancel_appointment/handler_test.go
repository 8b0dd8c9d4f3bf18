package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/internal/service/agenda"
	"github.com/turnate/booking-engine/pkg/logger"
)

type fakeAgenda struct {
	err     error
	id      int64
	contact string
}

func (f *fakeAgenda) CancelAppointment(_ context.Context, _ string, id int64, contact string) error {
	f.id, f.contact = id, contact
	return f.err
}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/b/{code}/appointments/{appointmentId}/cancel", h.Handle).Methods(http.MethodPatch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return w
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{name: "ok", path: "/api/v1/b/peluqueria-ana/appointments/12/cancel", body: `{"contact": "juana@example.com"}`, status: http.StatusOK},
		{name: "bad id", path: "/api/v1/b/peluqueria-ana/appointments/abc/cancel", body: `{"contact": "x"}`, status: http.StatusBadRequest},
		{name: "no contact", path: "/api/v1/b/peluqueria-ana/appointments/12/cancel", body: `{"contact": " "}`, status: http.StatusBadRequest},
		{name: "not found", path: "/api/v1/b/peluqueria-ana/appointments/12/cancel", body: `{"contact": "x"}`, err: domain.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "wrong contact", path: "/api/v1/b/peluqueria-ana/appointments/12/cancel", body: `{"contact": "x"}`, err: agenda.ErrAccessDenied, status: http.StatusForbidden},
		{name: "already cancelled", path: "/api/v1/b/peluqueria-ana/appointments/12/cancel", body: `{"contact": "x"}`, err: agenda.ErrCannotCancel, status: http.StatusConflict},
		{name: "internal", path: "/api/v1/b/peluqueria-ana/appointments/12/cancel", body: `{"contact": "x"}`, err: agenda.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeAgenda{err: tt.err}

			w := serve(NewHandler(service, logger.NewNop()), tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, int64(12), service.id)
				assert.Equal(t, "juana@example.com", service.contact)
			}
		})
	}
}
