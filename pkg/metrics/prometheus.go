package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	chartsComputed *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheErrors    prometheus.Counter
	errorsTotal    *prometheus.CounterVec
	calcDuration   *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		chartsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astro_charts_computed_total",
				Help: "Total number of charts computed (cache misses included)",
			},
			[]string{"kind"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astro_cache_hits_total",
				Help: "Total number of chart cache hits",
			},
			[]string{"kind"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astro_cache_misses_total",
				Help: "Total number of chart cache misses",
			},
			[]string{"kind"},
		),
		cacheErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "astro_cache_errors_total",
				Help: "Total number of cache failures (computation continued uncached)",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astro_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		calcDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astro_calculation_duration_seconds",
				Help:    "Duration of chart calculations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
}

// RecordChartComputed records a computed chart of the given kind
// (natal, transit, progression).
func (r *Recorder) RecordChartComputed(kind string) {
	r.chartsComputed.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a cache hit for the given chart kind.
func (r *Recorder) RecordCacheHit(kind string) {
	r.cacheHits.WithLabelValues(kind).Inc()
}

// RecordCacheMiss records a cache miss for the given chart kind.
func (r *Recorder) RecordCacheMiss(kind string) {
	r.cacheMisses.WithLabelValues(kind).Inc()
}

// RecordCacheError records a cache failure that was degraded to compute-only.
func (r *Recorder) RecordCacheError() {
	r.cacheErrors.Inc()
}

// RecordError records an error occurrence by taxonomy kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCalcDuration records calculation latency in seconds.
func (r *Recorder) RecordCalcDuration(kind string, seconds float64) {
	r.calcDuration.WithLabelValues(kind).Observe(seconds)
}
