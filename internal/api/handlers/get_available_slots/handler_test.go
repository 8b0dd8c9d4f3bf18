package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/turnate/booking-engine/internal/usecase/get_available_slots"
	"github.com/turnate/booking-engine/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

type countingObserver struct{ total int }

func (o *countingObserver) ObserveSlots(count int) { o.total += count }

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/b/{code}/available-slots", h.Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_Success(t *testing.T) {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, loc)
	useCase := &fakeUseCase{resp: &getAvailableSlots.Response{
		BusinessCode:    "peluqueria-ana",
		ServiceID:       7,
		ServiceName:     "Corte",
		DurationMinutes: 30,
		Location:        loc,
		Days: []getAvailableSlots.Day{{
			Date:  day,
			Slots: []getAvailableSlots.Slot{{Start: start, End: start.Add(30 * time.Minute)}},
		}},
	}}
	observer := &countingObserver{}

	w := serve(NewHandler(useCase, observer, logger.NewNop()), "/api/v1/b/peluqueria-ana/available-slots?serviceId=7&date=2025-06-02")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "peluqueria-ana", useCase.got.BusinessCode)
	assert.Equal(t, int64(7), useCase.got.ServiceID)
	assert.True(t, useCase.got.To.IsZero())
	assert.Equal(t, 1, observer.total)

	var body AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Days, 1)
	assert.Equal(t, "2025-06-02", body.Days[0].Date)
	assert.Equal(t, AvailableSlot{Start: "2025-06-02T12:00:00Z", End: "2025-06-02T12:30:00Z", LocalTime: "09:00"}, body.Days[0].Slots[0])
	assert.Equal(t, "America/Argentina/Buenos_Aires", body.TimeZone)
}

func TestHandle_Range(t *testing.T) {
	useCase := &fakeUseCase{resp: &getAvailableSlots.Response{Location: time.UTC}}

	w := serve(NewHandler(useCase, nil, logger.NewNop()), "/api/v1/b/peluqueria-ana/available-slots?serviceId=7&from=2025-06-02&to=2025-06-08")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), useCase.got.To)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing service", target: "?date=2025-06-02", status: http.StatusBadRequest},
		{name: "bad service", target: "?serviceId=abc&date=2025-06-02", status: http.StatusBadRequest},
		{name: "missing date", target: "?serviceId=7&from=2025-06-02", status: http.StatusBadRequest},
		{name: "bad date", target: "?serviceId=7&date=02/06/2025", status: http.StatusBadRequest},
		{name: "business not found", target: "?serviceId=7&date=2025-06-02", err: getAvailableSlots.ErrBusinessNotFound, status: http.StatusNotFound},
		{name: "service not found", target: "?serviceId=7&date=2025-06-02", err: getAvailableSlots.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "range too long", target: "?serviceId=7&date=2025-06-02", err: getAvailableSlots.ErrRangeTooLong, status: http.StatusBadRequest},
		{name: "session expired", target: "?serviceId=7&date=2025-06-02", err: getAvailableSlots.ErrSessionExpired, status: http.StatusUnauthorized},
		{name: "backend failure", target: "?serviceId=7&date=2025-06-02", err: getAvailableSlots.ErrInternal, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &fakeUseCase{err: tt.err}

			w := serve(NewHandler(useCase, nil, logger.NewNop()), "/api/v1/b/peluqueria-ana/available-slots"+tt.target)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
