// Package metrics provides Prometheus metrics collection for the coating service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuoteCalculationsTotal tracks price calculations by outcome.
	QuoteCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_calculations_total",
			Help: "Total number of quote price calculations",
		},
		[]string{"status"},
	)

	// QuoteCalculationDuration tracks how long a price calculation takes.
	QuoteCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_calculation_duration_seconds",
			Help:    "Quote calculation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// QuoteDiscountsTotal counts discounts applied, by kind.
	QuoteDiscountsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_discounts_applied_total",
			Help: "Total number of discounts applied to quotes",
		},
		[]string{"kind"},
	)

	// QuotesSubmittedTotal counts persisted quotes.
	QuotesSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quotes_submitted_total",
			Help: "Total number of quotes submitted",
		},
	)

	// QuoteValue tracks the distribution of quoted totals.
	QuoteValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_total_amount",
			Help:    "Distribution of quoted totals",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 50000},
		},
	)

	// CatalogPublishesTotal counts catalog publish attempts by outcome.
	CatalogPublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_publishes_total",
			Help: "Total number of catalog publish attempts",
		},
		[]string{"result"},
	)

	// CatalogVersion is the version number of the active catalog.
	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_active_version",
			Help: "Version of the active pricing catalog",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// LogEntriesDropped counts log entries the async sink could not queue.
	LogEntriesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "log_entries_dropped_total",
			Help: "Total number of log entries dropped by the async sink",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordQuoteCalculation records metrics for a price calculation.
func RecordQuoteCalculation(duration time.Duration, status string) {
	QuoteCalculationDuration.Observe(duration.Seconds())
	QuoteCalculationsTotal.WithLabelValues(status).Inc()
}

// RecordDiscounts increments the counter for each applied discount kind.
func RecordDiscounts(kinds []string) {
	for _, k := range kinds {
		QuoteDiscountsTotal.WithLabelValues(k).Inc()
	}
}

// RecordQuoteSubmitted records a persisted quote and its total.
func RecordQuoteSubmitted(total float64) {
	QuotesSubmittedTotal.Inc()
	QuoteValue.Observe(total)
}

// RecordCatalogPublish records a publish attempt. version is only applied
// on success.
func RecordCatalogPublish(result string, version int) {
	CatalogPublishesTotal.WithLabelValues(result).Inc()
	if result == "success" {
		CatalogVersion.Set(float64(version))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheSize sets the current entry count for a cache.
func UpdateCacheSize(cache string, size int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
}

// SetCircuitBreakerState publishes the state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordLogDropped counts a log entry the sink discarded.
func RecordLogDropped() {
	LogEntriesDropped.Inc()
}
