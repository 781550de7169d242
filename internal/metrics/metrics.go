// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Storage Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "badger_operation_duration_seconds",
			Help:    "Duration of storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badger_operation_errors_total",
			Help: "Total number of failed storage operations",
		},
		[]string{"operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of signup and login attempts",
		},
		[]string{"action", "result"}, // action: "signup", "login"; result: "success", "failure"
	)

	// Bulk Ingestion Metrics
	IngestQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_queue_length",
			Help: "Number of movie records waiting in the ingestion queue",
		},
	)

	IngestProcessing = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_processing",
			Help: "1 while the drain loop is running, 0 when idle",
		},
	)

	IngestBatchesAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_batches_accepted_total",
			Help: "Total number of bulk batches accepted",
		},
	)

	IngestBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_batch_size",
			Help:    "Number of records per accepted bulk batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	IngestItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_items_total",
			Help: "Total number of completed ingestion items",
		},
		[]string{"result", "kind"}, // result: "processed", "failed"; kind: "", "validation", "storage", "panic"
	)

	IngestItemDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_item_duration_seconds",
			Help:    "Time to validate and store one ingestion item",
			Buckets: prometheus.DefBuckets,
		},
	)

	IngestDrainLoops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_drain_loops_started_total",
			Help: "Total number of drain loops started",
		},
	)

	IngestPanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_panics_recovered_total",
			Help: "Total number of panics recovered inside the drain loop",
		},
		[]string{"scope"}, // "item", "loop"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (capacity or TTL)",
		},
		[]string{"cache_type"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// SetAppInfo publishes the build version. Call once at startup.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// SetUptime publishes the process uptime.
func SetUptime(uptime time.Duration) {
	AppUptime.Set(uptime.Seconds())
}

// RecordDBOperation records a storage operation metric
func RecordDBOperation(operation string, duration time.Duration, err error) {
	DBOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthAttempt records a signup or login outcome.
func RecordAuthAttempt(action string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthAttempts.WithLabelValues(action, result).Inc()
}

// RecordIngestBatch records an accepted bulk batch.
func RecordIngestBatch(size int) {
	IngestBatchesAccepted.Inc()
	IngestBatchSize.Observe(float64(size))
}

// RecordIngestItem records one completed ingestion item. kind is empty for
// successes and names the failure class otherwise.
func RecordIngestItem(ok bool, kind string, duration time.Duration) {
	result := "processed"
	if !ok {
		result = "failed"
	}
	IngestItemsTotal.WithLabelValues(result, kind).Inc()
	IngestItemDuration.Observe(duration.Seconds())
}

// SetIngestQueueState publishes the queue length and processing flag.
func SetIngestQueueState(queueLength int, processing bool) {
	IngestQueueLength.Set(float64(queueLength))
	if processing {
		IngestProcessing.Set(1)
	} else {
		IngestProcessing.Set(0)
	}
}
