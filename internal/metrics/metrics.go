package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	remindersTotal    *prometheus.CounterVec
	reminderCycles    *prometheus.CounterVec
	deliveryErrors    *prometheus.CounterVec
	suggestionsTotal  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weekplan_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weekplan_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		remindersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weekplan_reminders_total",
			Help: "Reminders emitted by kind.",
		}, []string{"kind"}),
		reminderCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weekplan_reminder_cycles_total",
			Help: "Reminder job cycles by result (ok, failed).",
		}, []string{"result"}),
		deliveryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weekplan_reminder_delivery_errors_total",
			Help: "Failed reminder deliveries by sink.",
		}, []string{"sink"}),
		suggestionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weekplan_suggestions_computed_total",
			Help: "Daily suggestions computed and persisted.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.remindersTotal,
		m.reminderCycles,
		m.deliveryErrors,
		m.suggestionsTotal,
		collectors.NewGoCollector(),
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Reminder(kind string) {
	if m == nil {
		return
	}
	m.remindersTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) Cycle(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.reminderCycles.WithLabelValues(result).Inc()
}

func (m *Metrics) DeliveryError(sink string) {
	if m == nil {
		return
	}
	m.deliveryErrors.WithLabelValues(sink).Inc()
}

func (m *Metrics) SuggestionComputed() {
	if m == nil {
		return
	}
	m.suggestionsTotal.Inc()
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
