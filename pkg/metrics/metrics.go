// Package metrics defines the Prometheus metric collectors used by the
// vocabulary pipeline and HTTP service and exposes a scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Threshold query outcomes used as the result label.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid_rank"
	ResultError   = "error"
)

// Metrics holds all Prometheus collectors for the module.
type Metrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	TitlesObservedTotal   prometheus.Counter
	TokensObservedTotal   prometheus.Counter
	RecordsSkippedTotal   prometheus.Counter
	VocabularySize        prometheus.Gauge
	RankDuration          prometheus.Histogram
	ThresholdQueriesTotal *prometheus.CounterVec
	ThresholdResultSize   prometheus.Histogram
	CacheHitsTotal        prometheus.Counter
	CacheMissesTotal      prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates all collectors and registers them with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry creates all collectors and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() for both arguments.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		TitlesObservedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "titles_observed_total",
				Help: "Total article titles fed to the frequency aggregator.",
			},
		),
		TokensObservedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tokens_observed_total",
				Help: "Total normalised title tokens counted.",
			},
		),
		RecordsSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "records_skipped_total",
				Help: "Malformed records dropped by the source. Comment rows are not counted.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vocabulary_size",
				Help: "Number of distinct words in the ranked vocabulary.",
			},
		),
		RankDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rank_duration_seconds",
				Help:    "Time spent sorting the vocabulary.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		ThresholdQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threshold_queries_total",
				Help: "Threshold queries by result (ok, invalid_rank, error).",
			},
			[]string{"result"},
		),
		ThresholdResultSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "threshold_result_size",
				Help:    "Number of words returned per threshold query.",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 500, 1000, 5000},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "threshold_cache_hits_total",
				Help: "Threshold answers served from Redis.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "threshold_cache_misses_total",
				Help: "Threshold answers computed because Redis had none.",
			},
		),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.TitlesObservedTotal,
		m.TokensObservedTotal,
		m.RecordsSkippedTotal,
		m.VocabularySize,
		m.RankDuration,
		m.ThresholdQueriesTotal,
		m.ThresholdResultSize,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for the registry the
// collectors were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
