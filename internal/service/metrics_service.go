package service

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/schoolops-api/internal/models"
)

// MetricsService owns the Prometheus registry and every collector the API exports.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	ledgerTransactions *prometheus.CounterVec
	ledgerVolume       *prometheus.CounterVec
	accountsOpened     *prometheus.CounterVec
	enrollments        prometheus.Counter
	assignments        prometheus.Counter
	reaperDeletions    *prometheus.CounterVec
	imageReleaseErrors prometheus.Counter

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	ledgerTransactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "Ledger transactions committed, by type",
	}, []string{"type"})

	ledgerVolume := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_volume_total",
		Help: "Absolute amount moved through the ledger, by direction",
	}, []string{"direction"})

	accountsOpened := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_accounts_opened_total",
		Help: "Accounts opened, by owner type",
	}, []string{"owner_type"})

	enrollments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollments_total",
		Help: "Completed course enrollments",
	})

	assignments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "course_assignments_total",
		Help: "Completed teacher assignments",
	})

	reaperDeletions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reaper_deletions_total",
		Help: "Cascading deletions committed, by entity",
	}, []string{"entity"})

	imageReleaseErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_release_failures_total",
		Help: "Object storage deletions that failed and were queued for retry",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		ledgerTransactions, ledgerVolume, accountsOpened, enrollments, assignments, reaperDeletions, imageReleaseErrors,
		goroutines,
	)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		cacheLatency:       cacheLatency,
		cacheWrite:         cacheWrite,
		cacheHitRatio:      cacheHitRatio,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
		ledgerTransactions: ledgerTransactions,
		ledgerVolume:       ledgerVolume,
		accountsOpened:     accountsOpened,
		enrollments:        enrollments,
		assignments:        assignments,
		reaperDeletions:    reaperDeletions,
		imageReleaseErrors: imageReleaseErrors,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordLedgerTransaction counts a committed transaction and its volume.
func (m *MetricsService) RecordLedgerTransaction(txnType string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.ledgerTransactions.WithLabelValues(ledgerTypeLabel(txnType)).Inc()
	direction := "in"
	if amount.IsNegative() {
		direction = "out"
	}
	m.ledgerVolume.WithLabelValues(direction).Add(amount.Abs().InexactFloat64())
}

// ledgerTypeLabel keeps the type label bounded; free-form types share one series.
func ledgerTypeLabel(txnType string) string {
	label := strings.ToUpper(strings.TrimSpace(txnType))
	switch label {
	case models.TransactionTypeDebit, models.TransactionTypeCredit, models.TransactionTypeCourseStart:
		return label
	default:
		return "OTHER"
	}
}

// RecordAccountOpened counts a newly opened account.
func (m *MetricsService) RecordAccountOpened(ownerType string) {
	if m == nil {
		return
	}
	m.accountsOpened.WithLabelValues(ownerType).Inc()
}

// RecordEnrollment counts a completed enrollment.
func (m *MetricsService) RecordEnrollment() {
	if m == nil {
		return
	}
	m.enrollments.Inc()
}

// RecordAssignment counts a completed teacher assignment.
func (m *MetricsService) RecordAssignment() {
	if m == nil {
		return
	}
	m.assignments.Inc()
}

// RecordDeletion counts a committed cascading deletion.
func (m *MetricsService) RecordDeletion(entity string) {
	if m == nil {
		return
	}
	m.reaperDeletions.WithLabelValues(entity).Inc()
}

// RecordImageReleaseFailure counts an object deletion that has to be retried.
func (m *MetricsService) RecordImageReleaseFailure() {
	if m == nil {
		return
	}
	m.imageReleaseErrors.Inc()
}
