package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
// Following the explicit dependency injection pattern, this struct
// is passed to all components that need to record metrics.
type Metrics struct {
	// Ledger node metrics
	ledgerCallsTotal   *prometheus.CounterVec
	ledgerCallDuration *prometheus.HistogramVec
	ledgerMintsTotal   *prometheus.CounterVec
	ledgerPostsTotal   *prometheus.CounterVec
	ledgerPostBytes    *prometheus.HistogramVec

	// Transaction classification metrics
	transactionsQueriedTotal    *prometheus.CounterVec
	transactionsClassifiedTotal *prometheus.CounterVec

	// Submission metrics
	submissionsTotal    *prometheus.CounterVec
	profileEchoesTotal  *prometheus.CounterVec
	feedQueriesTotal    *prometheus.CounterVec
	feedResultsReturned *prometheus.HistogramVec

	// Database Metrics
	dbQueryDuration   *prometheus.HistogramVec
	dbOperationsTotal *prometheus.CounterVec

	// HTTP Metrics
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec

	// NATS Metrics
	natsMessagesPublished *prometheus.CounterVec
	natsPublishDuration   *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		// Ledger node metrics
		ledgerCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_calls_total",
				Help: "Total number of ledger node calls by operation and status",
			},
			[]string{"operation", "status", "endpoint"},
		),
		ledgerCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_call_duration_seconds",
				Help:    "Duration of ledger node calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"operation", "endpoint"},
		),
		ledgerMintsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_mints_total",
				Help: "Total number of test-fund mint attempts by reason and status",
			},
			[]string{"reason", "status"},
		),
		ledgerPostsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_posts_total",
				Help: "Total number of ledger transaction posts by outcome",
			},
			[]string{"outcome"},
		),
		ledgerPostBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_post_bytes",
				Help:    "Size of data carried by posted ledger transactions",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
			[]string{"outcome"},
		),

		// Transaction classification metrics
		transactionsQueriedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_queried_total",
				Help: "Total number of raw transactions returned by the ledger query",
			},
			[]string{"endpoint"},
		),
		transactionsClassifiedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_classified_total",
				Help: "Total number of transactions classified by type",
			},
			[]string{"type", "status"},
		),

		// Submission metrics
		submissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "submissions_total",
				Help: "Total number of profile and content submissions by outcome",
			},
			[]string{"kind", "outcome"},
		),
		profileEchoesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profile_echoes_total",
				Help: "Total number of profile echo requests handled by the API",
			},
			[]string{"status"},
		),
		feedQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_queries_total",
				Help: "Total number of feed queries by filter mode",
			},
			[]string{"mode"},
		),
		feedResultsReturned: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "feed_results_returned",
				Help:    "Number of feed items matching a query",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 150},
			},
			[]string{"mode"},
		),

		// Database Metrics
		dbQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"operation", "table"},
		),
		dbOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_operations_total",
				Help: "Total number of database operations",
			},
			[]string{"operation", "status"},
		),

		// HTTP Metrics
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"handler", "method", "status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"handler", "method", "status"},
		),

		// NATS Metrics
		natsMessagesPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nats_messages_published_total",
				Help: "Total number of messages published to NATS",
			},
			[]string{"subject", "status"},
		),
		natsPublishDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nats_publish_duration_seconds",
				Help:    "Duration of NATS publish operations in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
			},
			[]string{"subject"},
		),
	}
}

// Ledger node metric helpers

// RecordLedgerCall records a ledger node call with duration.
func (m *Metrics) RecordLedgerCall(operation, status, endpoint string, duration float64) {
	m.ledgerCallsTotal.WithLabelValues(operation, status, endpoint).Inc()
	m.ledgerCallDuration.WithLabelValues(operation, endpoint).Observe(duration)
}

// RecordMint records a mint attempt. reason is "new_wallet" or "empty_balance".
func (m *Metrics) RecordMint(reason string, ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	m.ledgerMintsTotal.WithLabelValues(reason, status).Inc()
}

// RecordPost records the outcome of a transaction post and its data size.
func (m *Metrics) RecordPost(outcome string, dataBytes int) {
	m.ledgerPostsTotal.WithLabelValues(outcome).Inc()
	m.ledgerPostBytes.WithLabelValues(outcome).Observe(float64(dataBytes))
}

// Transaction classification metric helpers

// RecordTransactionsQueried records raw transactions returned by a query.
func (m *Metrics) RecordTransactionsQueried(endpoint string, count int) {
	m.transactionsQueriedTotal.WithLabelValues(endpoint).Add(float64(count))
}

// RecordTransactionClassified records one classified transaction.
func (m *Metrics) RecordTransactionClassified(txType, status string) {
	m.transactionsClassifiedTotal.WithLabelValues(txType, status).Inc()
}

// Submission metric helpers

// RecordSubmission records a profile or content submission outcome.
func (m *Metrics) RecordSubmission(kind, outcome string) {
	m.submissionsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordProfileEcho records a handled profile echo request.
func (m *Metrics) RecordProfileEcho(status string) {
	m.profileEchoesTotal.WithLabelValues(status).Inc()
}

// RecordFeedQuery records a feed query and how many items matched.
func (m *Metrics) RecordFeedQuery(mode string, results int) {
	m.feedQueriesTotal.WithLabelValues(mode).Inc()
	m.feedResultsReturned.WithLabelValues(mode).Observe(float64(results))
}

// Database metric helpers

// RecordDBQuery records a database query with duration.
func (m *Metrics) RecordDBQuery(operation, table string, duration float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, table).Observe(duration)
	m.dbOperationsTotal.WithLabelValues(operation, status).Inc()
}

// HTTP metric helpers

// RecordHTTPRequest records an HTTP request with duration.
func (m *Metrics) RecordHTTPRequest(handler, method string, statusCode int, duration float64) {
	status := statusCodeToString(statusCode)
	m.httpRequestDuration.WithLabelValues(handler, method, status).Observe(duration)
	m.httpRequestsTotal.WithLabelValues(handler, method, status).Inc()
}

// NATS metric helpers

// RecordNATSPublish records a NATS publish operation.
func (m *Metrics) RecordNATSPublish(subject, status string, duration float64) {
	m.natsMessagesPublished.WithLabelValues(subject, status).Inc()
	m.natsPublishDuration.WithLabelValues(subject).Observe(duration)
}

// Helper functions

func statusCodeToString(code int) string {
	// Group status codes by class
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "unknown"
	}
}
