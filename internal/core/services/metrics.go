package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for heatmap generation. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	yearRows       prometheus.Counter
	pagesCancelled prometheus.Counter
	invalidations  prometheus.Counter
	pageDuration   prometheus.Histogram
	statsDuration  prometheus.Histogram
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_heatmap_cache_hits_total",
			Help: "Year heatmap rows served from cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_heatmap_cache_misses_total",
			Help: "Year heatmap rows not found in cache",
		}),
		yearRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_heatmap_year_rows_computed_total",
			Help: "Year heatmap rows computed from completion history",
		}),
		pagesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_heatmap_pages_cancelled_total",
			Help: "Paged year heatmap runs stopped by cancellation",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanso_heatmap_cache_invalidations_total",
			Help: "Full heatmap cache clears",
		}),
		pageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kanso_heatmap_page_duration_seconds",
			Help:    "Duration of paged year heatmap generation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		statsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kanso_streak_stats_duration_seconds",
			Help:    "Duration of streak statistics computation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}

	registry.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.yearRows,
		m.pagesCancelled,
		m.invalidations,
		m.pageDuration,
		m.statsDuration,
	)

	return m
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) YearRowComputed() {
	if m == nil {
		return
	}
	m.yearRows.Inc()
}

func (m *Metrics) PageCancelled() {
	if m == nil {
		return
	}
	m.pagesCancelled.Inc()
}

func (m *Metrics) Invalidated() {
	if m == nil {
		return
	}
	m.invalidations.Inc()
}

func (m *Metrics) ObservePage(seconds float64) {
	if m == nil {
		return
	}
	m.pageDuration.Observe(seconds)
}

func (m *Metrics) ObserveStats(seconds float64) {
	if m == nil {
		return
	}
	m.statsDuration.Observe(seconds)
}
