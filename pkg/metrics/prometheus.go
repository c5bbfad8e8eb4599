// Package metrics provides Prometheus metrics for the Marquee catalog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid_argument"
	OutcomeError    = "error"
)

// Manager manages all Prometheus metrics for the catalog service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Catalog Metrics
	catalogOperations       *prometheus.CounterVec
	catalogOperationLatency *prometheus.HistogramVec
	catalogMovies           prometheus.Gauge

	// Dice Metrics
	diceRequests prometheus.Counter
	diceRolled   prometheus.Counter

	// Repository Metrics
	repositoryRecordsTotal  prometheus.Gauge
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// GraphQL Metrics
	graphqlRequests *prometheus.CounterVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "marquee",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.catalogOperations = auto.NewCounterVec(
		m.counterOpts("operations_total", "Total number of catalog operations by operation and outcome"),
		[]string{"operation", "outcome"},
	)
	m.catalogOperationLatency = auto.NewHistogramVec(
		m.histogramOpts("operation_latency_milliseconds", "Catalog operation latency in milliseconds", m.histogramBuckets),
		[]string{"operation"},
	)
	m.catalogMovies = auto.NewGauge(m.gaugeOpts("movies", "Current number of movies in the catalog"))

	m.diceRequests = auto.NewCounter(m.counterOpts("dice_requests_total", "Total number of dice roll requests served"))
	m.diceRolled = auto.NewCounter(m.counterOpts("dice_rolled_total", "Total number of individual dice rolled"))

	m.repositoryRecordsTotal = auto.NewGauge(m.gaugeOpts("repository_records_total", "Total number of records held by the repository"))
	m.repositoryUpdateLatency = auto.NewHistogram(m.histogramOpts(
		"repository_update_latency_microseconds",
		"Repository write latency in microseconds",
		[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
	m.repositoryQueryLatency = auto.NewHistogram(m.histogramOpts(
		"repository_query_latency_microseconds",
		"Repository read latency in microseconds",
		[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.graphqlRequests = auto.NewCounterVec(
		m.counterOpts("graphql_requests_total", "Total number of GraphQL requests by outcome"),
		[]string{"outcome"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of failed requests in milliseconds", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Current heap allocation in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Current number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordCatalogOperation counts one catalog operation and observes its latency.
func (m *Manager) RecordCatalogOperation(operation, outcome string, latencyMs float64) {
	m.catalogOperations.WithLabelValues(operation, outcome).Inc()
	m.catalogOperationLatency.WithLabelValues(operation).Observe(latencyMs)
}

// UpdateCatalogMovies sets the catalog size gauge.
func (m *Manager) UpdateCatalogMovies(count int) {
	m.catalogMovies.Set(float64(count))
}

// RecordDiceRoll counts one roll request of n dice.
func (m *Manager) RecordDiceRoll(n int) {
	m.diceRequests.Inc()
	if n > 0 {
		m.diceRolled.Add(float64(n))
	}
}

// RecordCatalogOperation records a catalog operation on the global manager.
func RecordCatalogOperation(operation, outcome string, latencyMs float64) {
	globalManager.RecordCatalogOperation(operation, outcome, latencyMs)
}

// UpdateCatalogMovies sets the catalog size gauge on the global manager.
func UpdateCatalogMovies(count int) {
	globalManager.UpdateCatalogMovies(count)
}

// RecordDiceRoll records a dice roll on the global manager.
func RecordDiceRoll(n int) {
	globalManager.RecordDiceRoll(n)
}

// Repository Metrics Functions.

// UpdateRepositoryRecordsTotal sets the total records gauge.
func UpdateRepositoryRecordsTotal(count int) {
	globalManager.repositoryRecordsTotal.Set(float64(count))
}

// RecordRepositoryUpdateLatency records repository write latency.
func RecordRepositoryUpdateLatency(latencyUs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyUs)
}

// RecordRepositoryQueryLatency records repository read latency.
func RecordRepositoryQueryLatency(latencyUs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyUs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordGraphQLRequest counts a GraphQL request; outcome is "ok" or "error".
func RecordGraphQLRequest(outcome string) {
	globalManager.graphqlRequests.WithLabelValues(outcome).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed request.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
