// Package metrics provides Prometheus metrics for the peloton chart service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pointer event kinds accepted by RecordPointerEvent.
const (
	PointerEnter = "enter"
	PointerLeave = "leave"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Data source
	fetchTotal   prometheus.Counter
	fetchErrors  *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	parseErrors  prometheus.Counter
	records      prometheus.Gauge

	// Rendering
	rendersTotal  *prometheus.CounterVec
	renderLatency prometheus.Histogram
	markersDrawn  prometheus.Gauge

	// Interaction
	pointerEvents   *prometheus.CounterVec
	tooltipActive   prometheus.Gauge
	dispatchLatency prometheus.Histogram

	// Pointer queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "peloton",
		subsystem:        "scatter",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	m.fetchTotal = m.counter("fetch_total", "Total number of dataset fetch attempts")
	m.fetchErrors = m.counterVec("fetch_errors_total", "Dataset fetch failures by kind", "kind")
	m.fetchLatency = m.histogram("fetch_latency_milliseconds", "Dataset fetch latency in milliseconds")
	m.parseErrors = m.counter("parse_errors_total", "Records rejected because of a malformed time")
	m.records = m.gauge("records_loaded", "Number of records in the loaded dataset")

	m.rendersTotal = m.counterVec("renders_total", "Total number of chart renders by surface", "surface")
	m.renderLatency = m.histogram("render_latency_milliseconds", "Chart render latency in milliseconds")
	m.markersDrawn = m.gauge("markers_drawn", "Markers drawn by the last render")

	m.pointerEvents = m.counterVec("pointer_events_total", "Pointer events applied to the tooltip", "kind")
	m.tooltipActive = m.gauge("tooltip_active", "1 while the tooltip is shown, 0 otherwise")
	m.dispatchLatency = m.histogram("dispatch_latency_milliseconds", "Time from enqueue to tooltip update in milliseconds")

	m.queueSize = m.gauge("pointer_queue_size", "Pointer events waiting for the dispatcher")
	m.queueCapacity = m.gauge("pointer_queue_capacity", "Capacity of the pointer event queue")
	m.queueEnqueueErrors = m.counterVec("pointer_queue_enqueue_errors_total", "Rejected pointer events by reason", "reason")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by HTTP endpoint",
		"endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Allocated heap memory in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds", "Average GC pause in milliseconds")
}

// RecordFetch records a fetch attempt and its latency.
func (m *Manager) RecordFetch(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.fetchTotal.Inc()
	m.fetchLatency.Observe(latencyMs)
}

// RecordFetchError records a failed fetch of the given kind.
func (m *Manager) RecordFetchError(kind string) {
	if !m.enabled {
		return
	}
	m.fetchErrors.WithLabelValues(kind).Inc()
}

// RecordParseError records a record rejected by the time parser.
func (m *Manager) RecordParseError() {
	if m.enabled {
		m.parseErrors.Inc()
	}
}

// UpdateRecordsLoaded sets the dataset size gauge.
func (m *Manager) UpdateRecordsLoaded(n int) {
	if m.enabled {
		m.records.Set(float64(n))
	}
}

// RecordRender records one render on the given surface.
func (m *Manager) RecordRender(surface string, latencyMs float64, markers int) {
	if !m.enabled {
		return
	}
	m.rendersTotal.WithLabelValues(surface).Inc()
	m.renderLatency.Observe(latencyMs)
	m.markersDrawn.Set(float64(markers))
}

// RecordPointerEvent counts an applied pointer event.
func (m *Manager) RecordPointerEvent(kind string) error {
	switch kind {
	case PointerEnter, PointerLeave:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPointerKind, kind)
	}
	if m.enabled {
		m.pointerEvents.WithLabelValues(kind).Inc()
	}
	return nil
}

// UpdateTooltipActive mirrors the controller state.
func (m *Manager) UpdateTooltipActive(active bool) {
	if !m.enabled {
		return
	}
	if active {
		m.tooltipActive.Set(1)
		return
	}
	m.tooltipActive.Set(0)
}

// RecordDispatchLatency observes the enqueue-to-apply latency of a pointer event.
func (m *Manager) RecordDispatchLatency(latencyMs float64) {
	if m.enabled {
		m.dispatchLatency.Observe(latencyMs)
	}
}

// UpdateQueue sets the pointer queue size and capacity gauges.
func (m *Manager) UpdateQueue(size, capacity int) {
	if !m.enabled {
		return
	}
	m.queueSize.Set(float64(size))
	m.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError counts a rejected pointer event.
func (m *Manager) RecordQueueEnqueueError(reason string) {
	if m.enabled {
		m.queueEnqueueErrors.WithLabelValues(reason).Inc()
	}
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error raised by a component.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if m.enabled {
		m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType records an error by type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if m.enabled {
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error answered by an HTTP endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystem sets the memory and goroutine gauges.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordSystemGCPauseTime observes the average GC pause.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// RecordFetch records a fetch attempt on the global manager.
func RecordFetch(latencyMs float64) {
	globalManager.RecordFetch(latencyMs)
}

// RecordFetchError counts a failed fetch of the given kind.
func RecordFetchError(kind string) {
	globalManager.RecordFetchError(kind)
}

// RecordParseError counts a rejected race time.
func RecordParseError() {
	globalManager.RecordParseError()
}

// UpdateRecordsLoaded sets the dataset size gauge.
func UpdateRecordsLoaded(n int) {
	globalManager.UpdateRecordsLoaded(n)
}

// RecordRender records one render.
func RecordRender(surface string, latencyMs float64, markers int) {
	globalManager.RecordRender(surface, latencyMs, markers)
}

// RecordPointerEvent counts an applied pointer event.
func RecordPointerEvent(kind string) error {
	return globalManager.RecordPointerEvent(kind)
}

// UpdateTooltipActive mirrors the tooltip state.
func UpdateTooltipActive(active bool) {
	globalManager.UpdateTooltipActive(active)
}

// RecordDispatchLatency observes pointer dispatch latency.
func RecordDispatchLatency(latencyMs float64) {
	globalManager.RecordDispatchLatency(latencyMs)
}

// UpdateQueue sets the pointer queue gauges.
func UpdateQueue(size, capacity int) {
	globalManager.UpdateQueue(size, capacity)
}

// RecordQueueEnqueueError counts a rejected pointer event.
func RecordQueueEnqueueError(reason string) {
	globalManager.RecordQueueEnqueueError(reason)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// RecordErrorByEndpoint records an error answered by an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystem sets the memory and goroutine gauges.
func UpdateSystem(memoryBytes uint64, goroutines int) {
	globalManager.UpdateSystem(memoryBytes, goroutines)
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.RecordSystemGCPauseTime(pauseMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
