package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the arXiv query service,
// organized by subsystem: query parsing, searches, arXiv API requests, and
// the HTTP surface. All collectors are registered via promauto with the
// default Prometheus registry.
type Metrics struct {
	// ParsesTotal counts parse attempts, labeled by outcome (success, failure).
	ParsesTotal *prometheus.CounterVec

	// ParseErrors counts parse failures, labeled by error code.
	ParseErrors *prometheus.CounterVec

	// ParseDuration observes parse duration in seconds.
	ParseDuration prometheus.Histogram

	// SearchesStarted counts searches initiated.
	SearchesStarted prometheus.Counter

	// SearchesCompleted counts searches that returned results.
	SearchesCompleted prometheus.Counter

	// SearchesFailed counts searches that ended in failure.
	SearchesFailed prometheus.Counter

	// SearchDuration observes end-to-end search duration in seconds.
	SearchDuration prometheus.Histogram

	// PapersPerSearch observes the distribution of papers returned per search.
	PapersPerSearch prometheus.Histogram

	// ArxivRequestsTotal counts HTTP requests to the arXiv API.
	ArxivRequestsTotal prometheus.Counter

	// ArxivRequestsFailed counts failed arXiv API requests, labeled by error type.
	ArxivRequestsFailed *prometheus.CounterVec

	// ArxivRequestDuration observes arXiv API request duration in seconds.
	ArxivRequestDuration prometheus.Histogram

	// HTTPRequestsTotal counts handled HTTP requests, labeled by method, path and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request handling duration in seconds.
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// Parsing
		ParsesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Total number of query parse attempts by outcome",
		}, []string{"outcome"}),
		ParseErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Total number of query parse failures by error code",
		}, []string{"code"}),
		ParseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Duration of query parsing in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),

		// Searches
		SearchesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of searches started",
		}),
		SearchesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_completed_total",
			Help:      "Total number of searches completed successfully",
		}),
		SearchesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of searches that failed",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of searches in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		PapersPerSearch: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "papers_per_search",
			Help:      "Number of papers returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200, 500, 1000},
		}),

		// arXiv API
		ArxivRequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arxiv_requests_total",
			Help:      "Total number of requests to the arXiv API",
		}),
		ArxivRequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arxiv_requests_failed_total",
			Help:      "Total number of failed arXiv API requests by error type",
		}, []string{"error_type"}),
		ArxivRequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "arxiv_request_duration_seconds",
			Help:      "Duration of arXiv API requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		// HTTP surface
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of handled HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP request handling in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method", "path"}),
	}
}

// RecordParseSuccess records a successful parse.
func (m *Metrics) RecordParseSuccess(durationSeconds float64) {
	m.ParsesTotal.WithLabelValues("success").Inc()
	m.ParseDuration.Observe(durationSeconds)
}

// RecordParseFailure records a failed parse with its error code.
func (m *Metrics) RecordParseFailure(code string, durationSeconds float64) {
	m.ParsesTotal.WithLabelValues("failure").Inc()
	m.ParseErrors.WithLabelValues(code).Inc()
	m.ParseDuration.Observe(durationSeconds)
}

// RecordSearchStarted records that a search has started.
func (m *Metrics) RecordSearchStarted() {
	m.SearchesStarted.Inc()
}

// RecordSearchCompleted records that a search has completed.
func (m *Metrics) RecordSearchCompleted(paperCount int, durationSeconds float64) {
	m.SearchesCompleted.Inc()
	m.SearchDuration.Observe(durationSeconds)
	m.PapersPerSearch.Observe(float64(paperCount))
}

// RecordSearchFailed records that a search has failed.
func (m *Metrics) RecordSearchFailed(durationSeconds float64) {
	m.SearchesFailed.Inc()
	m.SearchDuration.Observe(durationSeconds)
}

// RecordArxivRequest records a request to the arXiv API.
func (m *Metrics) RecordArxivRequest(durationSeconds float64) {
	m.ArxivRequestsTotal.Inc()
	m.ArxivRequestDuration.Observe(durationSeconds)
}

// RecordArxivRequestFailed records a failed arXiv API request.
func (m *Metrics) RecordArxivRequestFailed(errorType string) {
	m.ArxivRequestsFailed.WithLabelValues(errorType).Inc()
}

// RecordHTTPRequest records a handled HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}
