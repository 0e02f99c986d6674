package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes recorded by the analyze proxy.
const (
	outcomeSuccess        = "success"
	outcomeBackendError   = "backend_error"
	outcomeTransportError = "transport_error"
	outcomeBadRequest     = "bad_request"
)

// Metrics holds the server's Prometheus collectors.
//
// Collectors are registered on a registry owned by the server rather than
// the global default registry, so that several servers (and tests) can run
// in one process.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	analysesTotal       *prometheus.CounterVec
	analysisDuration    prometheus.Histogram
	analysesInFlight    prometheus.Gauge
}

// NewMetrics creates and registers the collectors, together with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		analysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidsense_analyses_total",
				Help: "Total number of analysis requests forwarded to the backend.",
			},
			[]string{"outcome"},
		),
		analysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "vidsense_analysis_duration_seconds",
				Help: "Duration of forwarded analysis requests.",
				// Transcription of a long video takes minutes.
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
		analysesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "vidsense_analyses_in_flight",
				Help: "Current number of analysis requests waiting for the backend.",
			},
		),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
