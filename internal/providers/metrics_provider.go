package providers

import (
	"rosterd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveSweepDuration(duration time.Duration)
	AddNewsSwept(count int)
	IncWarningsIssued()
	IncReprimandsIssued()
	IncDismissals()
	SetRosterTotal(category string, count int)
	SetNewsTotal(count int)
	SetCommandsTotal(count int)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	sweepDuration    prometheus.Histogram
	newsSwept        prometheus.Counter
	warningsIssued   prometheus.Counter
	reprimandsIssued prometheus.Counter
	dismissals       prometheus.Counter
	rosterTotal      *prometheus.GaugeVec
	newsTotal        prometheus.Gauge
	commandsTotal    prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveSweepDuration(duration time.Duration) {
	m.sweepDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) AddNewsSwept(count int) {
	m.newsSwept.Add(float64(count))
}

func (m *MetricsProvider) IncWarningsIssued() {
	m.warningsIssued.Inc()
}

func (m *MetricsProvider) IncReprimandsIssued() {
	m.reprimandsIssued.Inc()
}

func (m *MetricsProvider) IncDismissals() {
	m.dismissals.Inc()
}

func (m *MetricsProvider) SetRosterTotal(category string, count int) {
	m.rosterTotal.WithLabelValues(category).Set(float64(count))
}

func (m *MetricsProvider) SetNewsTotal(count int) {
	m.newsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetCommandsTotal(count int) {
	m.commandsTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rosterd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rosterd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		sweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rosterd_sweep_duration_seconds",
			Help:    "Duration of news sweep runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		newsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_news_swept_total",
			Help: "Total number of news entries removed by the sweep",
		}),

		warningsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_warnings_issued_total",
			Help: "Total number of warnings issued",
		}),

		reprimandsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_reprimands_issued_total",
			Help: "Total number of reprimands issued",
		}),

		dismissals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rosterd_dismissals_total",
			Help: "Total number of dismissals after the reprimand maximum",
		}),

		rosterTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rosterd_roster_total",
			Help: "Registered persons per category",
		}, []string{"category"}),

		newsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rosterd_news_total",
			Help: "Current number of live news entries",
		}),

		commandsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rosterd_commands_total",
			Help: "Total commands executed, from document settings",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveSweepDuration(_ time.Duration)             {}
func (n *noopMetrics) AddNewsSwept(_ int)                               {}
func (n *noopMetrics) IncWarningsIssued()                               {}
func (n *noopMetrics) IncReprimandsIssued()                             {}
func (n *noopMetrics) IncDismissals()                                   {}
func (n *noopMetrics) SetRosterTotal(_ string, _ int)                   {}
func (n *noopMetrics) SetNewsTotal(_ int)                               {}
func (n *noopMetrics) SetCommandsTotal(_ int)                           {}
