// Package metrics provides Prometheus metrics for observability.
// Metrics are organized by domain: HTTP requests, articles, the feed, uploads, events and the database.
package metrics

import (
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "newshub"
)

// Operation results used as label values.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultRejected = "rejected"
	ResultStale    = "stale"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Article metrics - track repository operations driven by the API
	ArticleOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "articles",
			Name:      "operations_total",
			Help:      "Total number of article operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	ArticleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "articles",
			Name:      "views_total",
			Help:      "Total number of recorded article views",
		},
	)

	ArticlesCleanedUpTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "articles",
			Name:      "cleaned_up_total",
			Help:      "Total number of unpublished articles removed by cleanup",
		},
	)

	ArticlesPromotedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "articles",
			Name:      "promoted_total",
			Help:      "Total number of scheduled articles promoted to published",
		},
	)

	// Feed metrics - track rendering and the rendered-feed cache
	FeedRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "render_duration_seconds",
			Help:      "RSS feed render duration in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	FeedItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "items",
			Help:      "Number of items in the most recently rendered feed",
		},
	)

	FeedCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "cache_total",
			Help:      "Feed cache lookups and dropped stale stores by result",
		},
		[]string{"result"},
	)

	// Upload metrics - track image hosting calls
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "uploads",
			Name:      "total",
			Help:      "Total number of image uploads by result",
		},
		[]string{"result"},
	)

	ImageUploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "uploads",
			Name:      "duration_seconds",
			Help:      "Image upload round trip in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// Event metrics - track lifecycle event publishing
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of article events by type and result",
		},
		[]string{"type", "result"},
	)

	// Scheduler metrics - track cron job runs
	SchedulerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Scheduled job run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job", "result"},
	)

	// Database metrics - track connection pool state
	DBConnectionPoolSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Database connection pool stats",
		},
		[]string{"state"},
	)
)

// ObserveArticleOperation counts one article operation.
func ObserveArticleOperation(operation, result string) {
	ArticleOperationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveFeedRender records a completed render.
func ObserveFeedRender(durationSeconds float64, items int) {
	FeedRenderDuration.Observe(durationSeconds)
	FeedItems.Set(float64(items))
}

// ObserveFeedCache counts a cache lookup.
func ObserveFeedCache(result string) {
	FeedCacheTotal.WithLabelValues(result).Inc()
}

// ObserveImageUpload records an upload attempt.
func ObserveImageUpload(result string, durationSeconds float64) {
	ImageUploadsTotal.WithLabelValues(result).Inc()
	ImageUploadDuration.Observe(durationSeconds)
}

// ObserveEvent counts a publish attempt for an event type.
func ObserveEvent(eventType, result string) {
	EventsPublishedTotal.WithLabelValues(eventType, result).Inc()
}

// ObserveJob records one scheduled job run.
func ObserveJob(job, result string, durationSeconds float64) {
	SchedulerJobDuration.WithLabelValues(job, result).Observe(durationSeconds)
}

// PoolStats is an interface for getting pool statistics
// This allows for easier testing by mocking the pool stats
type PoolStats interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
}

// PoolStatsProvider is an interface for providing pool stats
type PoolStatsProvider interface {
	Stat() PoolStats
}

// pgxPoolAdapter adapts pgxpool.Pool to PoolStatsProvider
type pgxPoolAdapter struct {
	pool *pgxpool.Pool
}

func (a *pgxPoolAdapter) Stat() PoolStats {
	return a.pool.Stat()
}

// PoolStatsCollector collects database pool statistics periodically
type PoolStatsCollector struct {
	provider PoolStatsProvider
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewPoolStatsCollector creates a new pool stats collector
func NewPoolStatsCollector(pool *pgxpool.Pool) *PoolStatsCollector {
	return NewPoolStatsCollectorWithProvider(&pgxPoolAdapter{pool: pool})
}

// NewPoolStatsCollectorWithProvider creates a pool stats collector with a custom provider (for testing)
func NewPoolStatsCollectorWithProvider(provider PoolStatsProvider) *PoolStatsCollector {
	return &PoolStatsCollector{
		provider: provider,
		stopChan: make(chan struct{}),
	}
}

// Start begins collecting pool stats every interval
func (c *PoolStatsCollector) Start(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopChan:
				return
			}
		}
	}()
}

func (c *PoolStatsCollector) collect() {
	stats := c.provider.Stat()
	DBConnectionPoolSize.WithLabelValues("total").Set(float64(stats.TotalConns()))
	DBConnectionPoolSize.WithLabelValues("idle").Set(float64(stats.IdleConns()))
	DBConnectionPoolSize.WithLabelValues("in_use").Set(float64(stats.AcquiredConns()))
}

// Stop stops the pool stats collector
func (c *PoolStatsCollector) Stop() {
	close(c.stopChan)
	c.wg.Wait()
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time since the timer was created
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(t.Seconds())
}

// Seconds returns the elapsed time in seconds.
func (t *Timer) Seconds() float64 {
	return time.Since(t.start).Seconds()
}
