package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnate/booking-engine/pkg/authctx"
	"github.com/turnate/booking-engine/pkg/metrics"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, incoming)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, incoming, seen)
}

func TestSession(t *testing.T) {
	var (
		token string
		ok    bool
	)
	handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok = authctx.Token(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, ok)
	assert.Equal(t, "Bearer abc", token)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2, false)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "limits are per client")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"))

	now = now.Add(limiterIdleTTL + time.Second)
	limiter.Cleanup()
	assert.Empty(t, limiter.clients)
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(0, 1, false)
	handler := limiter.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiter_IgnoresForwardedHeaderByDefault(t *testing.T) {
	limiter := NewRateLimiter(0, 1, false)
	handler := limiter.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.7:52000"
		r.Header.Set("X-Forwarded-For", forwarded)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_ClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.5:41000"
	r.Header.Set("X-Forwarded-For", "198.51.100.9, 203.0.113.7")

	assert.Equal(t, "10.0.0.5", NewRateLimiter(1, 1, false).clientIP(r))
	assert.Equal(t, "203.0.113.7", NewRateLimiter(1, 1, true).clientIP(r), "behind a proxy the last hop is the real client")
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer("test", reg)

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.HandleFunc("/b/{code}/services", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/b/peluqueria-ana/services", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/b/barberia-juan/services", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, label := range metric.GetLabel() {
				labels[label.GetName()] = label.GetValue()
			}
			assert.Equal(t, "/b/{code}/services", labels["route"])
			assert.Equal(t, "404", labels["status"])
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), total)
}
