package metrics

import (
	"mariachi/config"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mariachi"

type Metrics interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
	CountRejection(entity, reason string)
	CountSwept(finalized int)
	Handler() http.Handler
}

type prometheusMetrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	rejections       *prometheus.CounterVec
	sweptReservation prometheus.Counter
}

// New builds the collectors on a private registry so repeated construction never
// collides with the global one.
func New(cfg *config.Config) Metrics {
	constLabels := prometheus.Labels{"app": cfg.App.Name}

	m := &prometheusMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "booking_rejections_total",
			Help:        "Booking submissions rejected by the availability checks.",
			ConstLabels: constLabels,
		}, []string{"entity", "reason"}),
		sweptReservation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "reservations_swept_total",
			Help:        "Reservations finalized automatically after their event time.",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.rejections,
		m.sweptReservation,
	)

	return m
}

func (m *prometheusMetrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *prometheusMetrics) CountRejection(entity, reason string) {
	m.rejections.WithLabelValues(entity, reason).Inc()
}

func (m *prometheusMetrics) CountSwept(finalized int) {
	m.sweptReservation.Add(float64(finalized))
}

func (m *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
