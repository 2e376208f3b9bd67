// Package observability provides Prometheus metrics, HTTP middleware and
// the translation warning sink for the relay gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// TranslationBuckets covers in-process translation times, 50µs to 250ms.
var TranslationBuckets = []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.25}

var (
	// RequestsTotal counts all HTTP requests by method, route, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "route"},
	)

	// StreamingConnections tracks the number of streaming relays in flight.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// TranslationsTotal counts request translations by format pair and outcome.
	TranslationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_translations_total",
			Help: "Request translations",
		},
		[]string{"source", "target", "status"},
	)

	// TranslationDuration records time spent translating a request.
	TranslationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_translation_duration_seconds",
			Help:    "Translation duration",
			Buckets: TranslationBuckets,
		},
		[]string{"source", "target"},
	)

	// TranslationWarningsTotal counts oversized prompt warnings by kind.
	TranslationWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_translation_warnings_total",
			Help: "Translation warnings",
		},
		[]string{"kind"},
	)

	// ProviderRequestsTotal counts requests sent to the upstream backend.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	// ProviderLatency records time to the upstream's response headers.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// RelayedBytesTotal counts upstream reply bytes copied to clients.
	RelayedBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_relayed_bytes_total",
			Help: "Bytes relayed from the provider",
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		TranslationsTotal,
		TranslationDuration,
		TranslationWarningsTotal,
		ProviderRequestsTotal,
		ProviderLatency,
		RelayedBytesTotal,
	)
}
