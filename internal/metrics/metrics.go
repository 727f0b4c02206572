// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Save outcomes.
const (
	SaveSuccess  = "success"
	SaveFailure  = "failure"
	SaveRejected = "rejected"
)

// Metrics holds all Prometheus metrics for the API. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	saves           *prometheus.CounterVec
	saveDuration    prometheus.Histogram
	savesScheduled  prometheus.Counter
	savesCoalesced  prometheus.Counter
	loads           *prometheus.CounterVec
	sessionsActive  prometheus.Gauge
}

// New creates a dedicated registry and registers all application metrics in
// it, plus the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finanzas_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		saves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finanzas_saves_total",
				Help: "Debounced document saves by outcome.",
			},
			[]string{"result"},
		),
		saveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finanzas_save_duration_seconds",
				Help:    "Duration of document saves.",
				Buckets: prometheus.DefBuckets,
			},
		),
		savesScheduled: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finanzas_saves_scheduled_total",
				Help: "Mutations that scheduled a debounced save.",
			},
		),
		savesCoalesced: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finanzas_saves_coalesced_total",
				Help: "Pending saves superseded by a newer mutation.",
			},
		),
		loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finanzas_loads_total",
				Help: "Session start document loads by outcome.",
			},
			[]string{"result"},
		),
		sessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "finanzas_sessions_active",
				Help: "Sessions currently held in memory.",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// RecordRequest observes one HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// RecordSave counts a save outcome and, for attempted saves, its duration.
func (m *Metrics) RecordSave(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(result).Inc()
	if result != SaveRejected {
		m.saveDuration.Observe(d.Seconds())
	}
}

// IncrSaveScheduled counts a mutation that armed the debounce timer.
func (m *Metrics) IncrSaveScheduled() {
	if m == nil {
		return
	}
	m.savesScheduled.Inc()
}

// IncrSaveCoalesced counts a pending save replaced before it fired.
func (m *Metrics) IncrSaveCoalesced() {
	if m == nil {
		return
	}
	m.savesCoalesced.Inc()
}

// IncrLoad counts a load outcome: "found", "absent" or "failure".
func (m *Metrics) IncrLoad(result string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result).Inc()
}

// SetSessionsActive sets the active session gauge.
func (m *Metrics) SetSessionsActive(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}
