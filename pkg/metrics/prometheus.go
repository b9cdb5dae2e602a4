// Package metrics provides Prometheus metrics for the Pathwise service.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the Pathwise service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Engine metrics
	assessments        *prometheus.CounterVec
	unknownRoleLookups prometheus.Counter
	simulations        prometheus.Counter
	simulatedYears     prometheus.Histogram
	roiOutcomes        *prometheus.CounterVec
	domainErrors       *prometheus.CounterVec
	datasetRoles       prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "pathwise",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.assessments = auto.NewCounterVec(
		m.counterOpts("assessments_total", "Total number of assessments by transition type"),
		[]string{"transition"},
	)
	m.unknownRoleLookups = auto.NewCounter(
		m.counterOpts("unknown_role_lookups_total", "Lookups that fell back to the placeholder profile"),
	)
	m.simulations = auto.NewCounter(
		m.counterOpts("simulations_total", "Total number of salary simulations run"),
	)
	m.simulatedYears = auto.NewHistogram(
		m.histogramOpts("simulated_years", "Horizon of salary simulations in years", []float64{0, 1, 2, 3, 5, 10, 20, 30, 50}),
	)
	m.roiOutcomes = auto.NewCounterVec(
		m.counterOpts("roi_outcomes_total", "ROI evaluations by breakeven label"),
		[]string{"breakeven"},
	)
	m.domainErrors = auto.NewCounterVec(
		m.counterOpts("errors_total", "Engine errors by operation and kind"),
		[]string{"operation", "kind"},
	)
	m.datasetRoles = auto.NewGauge(
		m.gaugeOpts("dataset_roles", "Number of roles in the loaded compensation dataset"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
}

// RecordAssessment counts an assessment for the given transition tag.
func (m *Manager) RecordAssessment(transition string) {
	if m.enabled {
		m.assessments.WithLabelValues(transition).Inc()
	}
}

// RecordUnknownRole counts a lookup that missed the dataset.
func (m *Manager) RecordUnknownRole() {
	if m.enabled {
		m.unknownRoleLookups.Inc()
	}
}

// RecordSimulation counts a simulation and observes its horizon.
func (m *Manager) RecordSimulation(years int) {
	if m.enabled {
		m.simulations.Inc()
		m.simulatedYears.Observe(float64(years))
	}
}

// RecordROIOutcome counts an ROI result by breakeven label.
func (m *Manager) RecordROIOutcome(label string) {
	if m.enabled {
		m.roiOutcomes.WithLabelValues(label).Inc()
	}
}

// RecordError counts a failed operation.
func (m *Manager) RecordError(operation, kind string) {
	if m.enabled {
		m.domainErrors.WithLabelValues(operation, kind).Inc()
	}
}

// UpdateDatasetRoles sets the number of roles in the loaded dataset.
func (m *Manager) UpdateDatasetRoles(n int) {
	if m.enabled {
		m.datasetRoles.Set(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// UpdateSystemMetrics samples memory and goroutine gauges.
func (m *Manager) UpdateSystemMetrics() {
	if !m.enabled {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.HeapAlloc))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// RunSystemCollector samples system gauges every refresh interval until ctx
// is done.
func (m *Manager) RunSystemCollector(ctx context.Context) {
	m.UpdateSystemMetrics()
	ticker := time.NewTicker(m.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.UpdateSystemMetrics()
		}
	}
}

// Global helpers delegate to the process-wide manager.

// RecordAssessment counts an assessment on the global manager.
func RecordAssessment(transition string) { globalManager.RecordAssessment(transition) }

// RecordUnknownRole counts an unknown role lookup on the global manager.
func RecordUnknownRole() { globalManager.RecordUnknownRole() }

// RecordSimulation counts a simulation on the global manager.
func RecordSimulation(years int) { globalManager.RecordSimulation(years) }

// RecordROIOutcome counts an ROI outcome on the global manager.
func RecordROIOutcome(label string) { globalManager.RecordROIOutcome(label) }

// RecordError counts a failed operation on the global manager.
func RecordError(operation, kind string) { globalManager.RecordError(operation, kind) }

// UpdateDatasetRoles sets the dataset size on the global manager.
func UpdateDatasetRoles(n int) { globalManager.UpdateDatasetRoles(n) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration on the global manager.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RunSystemCollector runs the global manager's system collector.
func RunSystemCollector(ctx context.Context) { globalManager.RunSystemCollector(ctx) }

// Init replaces the process-wide manager with one built from opts on a fresh
// registry. Call it before serving; handlers read GetRegistry when built.
func Init(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
	return globalManager
}

// Global returns the process-wide manager.
func Global() *Manager { return globalManager }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
