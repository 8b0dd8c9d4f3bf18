package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingsTotal       *prometheus.CounterVec
	SlotsReturned       prometheus.Histogram
	DBQueryDuration     *prometheus.HistogramVec
	DBConnections       *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SlotsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "available_slots_returned",
			Help:        "Number of available slots returned per request",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 5, 10, 20, 50, 100, 250, 500},
		}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
	}
}

// ObserveBooking учитывает исход попытки бронирования
func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSlots учитывает количество отданных слотов
func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.SlotsReturned.Observe(float64(count))
}
