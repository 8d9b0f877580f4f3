// Package metrics provides Prometheus metrics for the eligibility service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service registers.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Evaluation pipeline
	evaluationsComputed  prometheus.Counter
	evaluationDuplicates prometheus.Counter
	evaluationLatency    prometheus.Histogram
	visaScores           *prometheus.HistogramVec
	overallStatus        *prometheus.CounterVec
	snapshotsStored      prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount   prometheus.Gauge
	workerErrors  prometheus.Counter
	workerLatency prometheus.Histogram

	// Store
	trackedPlayers prometheus.Gauge
	snapshotCount  prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors by component
	errorsTotal *prometheus.CounterVec

	// Runtime
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
}

// Global manager on a custom registry so default Go collectors stay out of
// the scrape unless main opts back in.
var (
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sportsreels",
		subsystem:        "eligibility",
		histogramBuckets: prometheus.DefBuckets,
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

	m.evaluationsComputed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "evaluations_computed_total",
		Help: "Total eligibility evaluations computed.",
	})
	m.evaluationDuplicates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "evaluation_duplicates_total",
		Help: "Evaluation requests rejected as duplicates.",
	})
	m.evaluationLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "evaluation_latency_ms",
		Help:    "Latency of a full eligibility evaluation in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.visaScores = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "visa_score",
		Help:    "Distribution of normalized visa scores by category.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"visa"})
	m.overallStatus = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "overall_status_total",
		Help: "Evaluations by overall traffic-light status.",
	}, []string{"status"})
	m.snapshotsStored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshots_stored_total",
		Help: "Eligibility snapshots persisted.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size", Help: "Evaluation requests currently queued.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity", Help: "Configured queue capacity.",
	})
	m.queueUtilization = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization", Help: "Queue fill ratio (0-1).",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total", Help: "Successful enqueues.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeues_total", Help: "Successful dequeues.",
	})
	m.queueEnqueueErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total", Help: "Rejected enqueues (full, closed or cancelled).",
	})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count", Help: "Running evaluation workers.",
	})
	m.workerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total", Help: "Worker processing failures.",
	})
	m.workerLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_ms",
		Help:    "Per-request worker processing latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.trackedPlayers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "tracked_players", Help: "Player bundles currently stored.",
	})
	m.snapshotCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_count", Help: "Eligibility snapshots currently stored.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total", Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_total", Help: "Errors by component and kind.",
	}, []string{"component", "kind"})

	m.systemMemory = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes", Help: "Allocated heap bytes.",
	})
	m.systemGoroutines = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines", Help: "Current goroutine count.",
	})
}

// Package-level helpers on the global manager.

func RecordEvaluationComputed()          { globalManager.evaluationsComputed.Inc() }
func RecordEvaluationDuplicate()         { globalManager.evaluationDuplicates.Inc() }
func RecordEvaluationLatency(ms float64) { globalManager.evaluationLatency.Observe(ms) }
func RecordSnapshotStored()              { globalManager.snapshotsStored.Inc() }

func RecordVisaScore(visa string, score float64) {
	globalManager.visaScores.WithLabelValues(visa).Observe(score)
}

func RecordOverallStatus(status string) {
	globalManager.overallStatus.WithLabelValues(status).Inc()
}

func UpdateQueueSize(size int)            { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int)    { globalManager.queueCapacity.Set(float64(capacity)) }
func UpdateQueueUtilization(util float64) { globalManager.queueUtilization.Set(util) }
func RecordQueueEnqueue()                 { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()                 { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()            { globalManager.queueEnqueueErrors.Inc() }

func UpdateWorkerCount(count int)              { globalManager.workerCount.Set(float64(count)) }
func RecordWorkerError()                       { globalManager.workerErrors.Inc() }
func RecordWorkerProcessingLatency(ms float64) { globalManager.workerLatency.Observe(ms) }

func UpdateTrackedPlayers(count int) { globalManager.trackedPlayers.Set(float64(count)) }
func UpdateSnapshotCount(count int)  { globalManager.snapshotCount.Set(float64(count)) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordErrorByComponent(component, kind string) {
	globalManager.errorsTotal.WithLabelValues(component, kind).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemory.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutines.Set(float64(count)) }

// GetRegistry returns the custom registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
