// Package metrics provides Prometheus metrics for the resume analyzer.
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

const namespace = "resume_analyzer"

// Score path labels.
const (
	PathPrimary  = "primary"
	PathFallback = "fallback"
)

// Manager owns a registry and the application's collectors.
// All recording methods are safe to call on a nil *Manager.
type Manager struct {
	registry *prometheus.Registry

	analyses            *prometheus.CounterVec
	matchScore          prometheus.Histogram
	extractionFailures  *prometheus.CounterVec
	exports             *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a manager with its own registry, including Go runtime and process collectors.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	auto := promauto.With(reg)

	return &Manager{
		registry: reg,
		analyses: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed resume analyses by scoring path",
		}, []string{"path"}),
		matchScore: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_score",
			Help:      "Distribution of match scores (0-100)",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		extractionFailures: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Resume extraction failures by format and kind",
		}, []string{"format", "kind"}),
		exports: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Document downloads by document and format",
		}, []string{"document", "format"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordAnalysis counts one completed analysis and observes its score.
func (m *Manager) RecordAnalysis(score float64, fallback bool) {
	if m == nil {
		return
	}
	path := PathPrimary
	if fallback {
		path = PathFallback
	}
	m.analyses.WithLabelValues(path).Inc()
	m.matchScore.Observe(score)
}

// RecordExtractionFailure counts a failed upload extraction.
func (m *Manager) RecordExtractionFailure(format, kind string) {
	if m == nil {
		return
	}
	if format == "" {
		format = "unknown"
	}
	m.extractionFailures.WithLabelValues(format, kind).Inc()
}

// RecordExport counts a document download.
func (m *Manager) RecordExport(document, format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(document, format).Inc()
}

// RecordHTTPRequest counts a request and observes its latency.
func (m *Manager) RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
