// Package metrics provides Prometheus metrics for the Glide MCP server.
// It tracks tool call counts, latencies, backend API performance, and
// session state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "glide_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// BackendAPILatency measures Glide API call latency by version and operation
	BackendAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "backend_api_latency_seconds",
		Help:      "Glide API call latency by version and operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"version", "operation"})

	// BackendAPIRequestsTotal counts Glide API requests
	BackendAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backend_api_requests_total",
		Help:      "Total Glide API requests by version, operation and status",
	}, []string{"version", "operation", "status"})

	// BackendAPIErrors counts Glide API errors by error code
	BackendAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backend_api_errors_total",
		Help:      "Glide API errors by version, operation and error code",
	}, []string{"version", "operation", "error_code"})

	// VersionSwitchesTotal counts successful set_api_version calls
	VersionSwitchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "version_switches_total",
		Help:      "Successful API version switches by target version",
	}, []string{"version"})

	// SessionConfigured reports whether the session has an active client
	SessionConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "session_configured",
		Help:      "1 when an API version and credential are configured, 0 otherwise",
	})
)

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a Glide API call
func RecordAPICall(version, operation string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	BackendAPIRequestsTotal.WithLabelValues(version, operation, status).Inc()
	BackendAPILatency.WithLabelValues(version, operation).Observe(duration)
	if errorCode != "" {
		BackendAPIErrors.WithLabelValues(version, operation, errorCode).Inc()
	}
}

// RecordVersionSwitch records a successful API version switch
func RecordVersionSwitch(version string) {
	VersionSwitchesTotal.WithLabelValues(version).Inc()
}

// SetSessionConfigured updates the session configuration gauge
func SetSessionConfigured(configured bool) {
	if configured {
		SessionConfigured.Set(1)
	} else {
		SessionConfigured.Set(0)
	}
}
