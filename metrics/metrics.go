// Package metrics provides Prometheus metrics for the Monumenten MCP server.
// It tracks tool calls, registry query latencies and error kinds.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "monumenten_mcp"
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

	// ToolErrors counts failed tool calls by error kind
	ToolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tool_errors_total",
		Help:      "Failed tool calls by tool and error kind",
	}, []string{"tool", "kind"})

	// RegistryAPILatency measures registry query latency by registry and action
	RegistryAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "registry_api_latency_seconds",
		Help:      "Registry SPARQL query latency by registry and action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"registry", "action"})

	// RegistryAPIRequestsTotal counts registry queries
	RegistryAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "registry_api_requests_total",
		Help:      "Total registry queries by registry, action and status",
	}, []string{"registry", "action", "status"})

	// RegistryAPIErrors counts registry query errors by error code
	RegistryAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "registry_api_errors_total",
		Help:      "Registry query errors by registry, action and error code",
	}, []string{"registry", "action", "error_code"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordToolError records a failed tool call by error kind
func RecordToolError(tool, kind string) {
	ToolErrors.WithLabelValues(tool, kind).Inc()
}

// RecordAPICall records a registry query
func RecordAPICall(registry, action string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	RegistryAPIRequestsTotal.WithLabelValues(registry, action, status).Inc()
	RegistryAPILatency.WithLabelValues(registry, action).Observe(duration)
	if errorCode != "" {
		RegistryAPIErrors.WithLabelValues(registry, action, errorCode).Inc()
	}
}

// RecordHTTPRequest records a request served by the HTTP transport
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}
