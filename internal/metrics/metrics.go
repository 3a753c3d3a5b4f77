// Package metrics exposes Prometheus metrics for the API.
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

const namespace = "kalasangam"

// Manager owns a private registry. All methods are safe on a nil *Manager
// so services can run without metrics in tests.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	mediaUploads     *prometheus.CounterVec
	applications     *prometheus.CounterVec
	sessionEvents    *prometheus.CounterVec
	pendingRejected  *prometheus.CounterVec
	compressionBytes prometheus.Histogram
}

func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	return &Manager{
		registry: reg,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		mediaUploads: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "uploads_total",
			Help:      "Media uploads by slot and compression outcome",
		}, []string{"slot", "outcome"}),
		applications: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projects",
			Name:      "applications_total",
			Help:      "Applications submitted; kind is stored or local (demo project)",
		}, []string{"kind"}),
		sessionEvents: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "session_events_total",
			Help:      "Session change notifications published",
		}, []string{"type"}),
		pendingRejected: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "requests",
			Name:      "pending_rejected_total",
			Help:      "Requests rejected because an identical one was in flight",
		}, []string{"operation"}),
		compressionBytes: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "compressed_bytes",
			Help:      "Size of uploaded media after compression",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 2, 10),
		}),
	}
}

func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Manager) MediaUploaded(slot, outcome string, size int) {
	if m == nil {
		return
	}
	m.mediaUploads.WithLabelValues(slot, outcome).Inc()
	m.compressionBytes.Observe(float64(size))
}

func (m *Manager) ApplicationSubmitted(local bool) {
	if m == nil {
		return
	}
	kind := "stored"
	if local {
		kind = "local"
	}
	m.applications.WithLabelValues(kind).Inc()
}

func (m *Manager) SessionEvent(eventType string) {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues(eventType).Inc()
}

func (m *Manager) PendingRejected(operation string) {
	if m == nil {
		return
	}
	m.pendingRejected.WithLabelValues(operation).Inc()
}
