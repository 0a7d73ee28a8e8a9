// Package metrics provides Prometheus metrics for the warboard report
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics.
	reportsAssembled  prometheus.Counter
	analysisLatency   prometheus.Histogram
	analysisErrors    prometheus.Counter
	duplicateRequests prometheus.Counter

	// Report cache metrics.
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheStale  prometheus.Counter

	// Queue metrics.
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Operational health metrics.
	workerCount   prometheus.Gauge
	eventsTracked prometheus.Gauge
	reportsStored prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking by component.
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Default latency buckets in milliseconds.
var defaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500} //nolint:gochecknoglobals

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "warboard",
		histogramBuckets: defaultBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.reportsAssembled = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "reports_assembled_total",
		Help:      "Total number of event reports assembled.",
	})
	m.analysisLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "analysis_latency_ms",
		Help:      "End-to-end snapshot analysis latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.analysisErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "analysis_errors_total",
		Help:      "Total number of failed snapshot analyses.",
	})
	m.duplicateRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "duplicate_requests_total",
		Help:      "Total number of processing requests rejected as duplicates.",
	})

	m.cacheHits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "report_cache_hits_total",
		Help:      "Report cache reads served from a fresh entry.",
	})
	m.cacheMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "report_cache_misses_total",
		Help:      "Report cache reads that had to fetch.",
	})
	m.cacheStale = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "report_cache_stale_serves_total",
		Help:      "Report cache reads served stale while revalidating.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "queue_size",
		Help:      "Current number of queued analysis jobs.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "queue_capacity",
		Help:      "Configured analysis queue capacity.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_enqueues_total",
		Help:      "Total jobs enqueued.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_dequeues_total",
		Help:      "Total jobs dequeued.",
	})
	m.queueEnqueueErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_enqueue_errors_total",
		Help:      "Enqueue rejections by reason.",
	}, []string{"reason"})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "worker_count",
		Help:      "Number of running analysis workers.",
	})
	m.eventsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "events_tracked",
		Help:      "Number of events in the store.",
	})
	m.reportsStored = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "reports_stored",
		Help:      "Number of assembled reports in the store.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "errors_total",
		Help:      "Errors by component and type.",
	}, []string{"component", "type"})
}

// Package-level helpers against the global manager.

func RecordReportAssembled()               { globalManager.reportsAssembled.Inc() }
func RecordAnalysisLatency(ms float64)     { globalManager.analysisLatency.Observe(ms) }
func RecordAnalysisError()                 { globalManager.analysisErrors.Inc() }
func RecordDuplicateRequest()              { globalManager.duplicateRequests.Inc() }
func RecordCacheHit()                      { globalManager.cacheHits.Inc() }
func RecordCacheMiss()                     { globalManager.cacheMisses.Inc() }
func RecordCacheStale()                    { globalManager.cacheStale.Inc() }
func UpdateQueueSize(size int)             { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int)     { globalManager.queueCapacity.Set(float64(capacity)) }
func RecordQueueEnqueue()                  { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()                  { globalManager.queueDequeues.Inc() }
func UpdateWorkerCount(count int)          { globalManager.workerCount.Set(float64(count)) }
func UpdateEventsTracked(count int)        { globalManager.eventsTracked.Set(float64(count)) }
func UpdateReportsStored(count int)        { globalManager.reportsStored.Set(float64(count)) }

// RecordQueueEnqueueError counts one rejected enqueue for a reason.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest counts one handled request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request's duration.
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

// RecordError counts one error for a component.
func RecordError(component, errType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errType).Inc()
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
