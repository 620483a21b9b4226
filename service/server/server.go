package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brojonat/curioweave/service/feed"
	"github.com/brojonat/curioweave/service/metrics"
	natspkg "github.com/brojonat/curioweave/service/nats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server for the CurioWeave API.
type Server struct {
	addr      string
	wallets   WalletService
	feed      *feed.Store
	publisher natspkg.Publisher
	receipts  ReceiptStore
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	server    *http.Server
}

// New creates a new HTTP server with the given dependencies.
// The publisher is optional - if nil, profile events are not published.
// The metrics is optional - if nil, the metrics endpoint won't be available.
func New(addr string, wallets WalletService, store *feed.Store, publisher natspkg.Publisher, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		addr:      addr,
		wallets:   wallets,
		feed:      store,
		publisher: publisher,
		metrics:   m,
		gatherer:  prometheus.DefaultGatherer,
		logger:    logger,
	}
}

// WithGatherer serves /metrics from g instead of the default registry.
func (s *Server) WithGatherer(g prometheus.Gatherer) *Server {
	s.gatherer = g
	return s
}

// WithReceipts enables the receipt journal endpoint.
func (s *Server) WithReceipts(r ReceiptStore) *Server {
	s.receipts = r
	return s
}

// Handler builds the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	route := func(pattern, name string, h http.Handler) {
		mux.Handle(pattern, metrics.HTTPMetricsMiddleware(s.metrics, name)(h))
	}

	route("POST /api/v1/arweave/user/profile", "/api/v1/arweave/user/profile", handleCreateProfile(s.publisher, s.metrics, s.logger))
	route("GET /api/v1/arweave/feed", "/api/v1/arweave/feed", handleFeed(s.feed, s.metrics, s.logger))
	route("GET /api/v1/arweave/feed/{id}", "/api/v1/arweave/feed/item", handleFeedItem(s.feed))
	route("GET /api/v1/arweave/categories", "/api/v1/arweave/categories", handleCategories())
	route("GET /api/v1/arweave/wallet/{address}/balance", "/api/v1/arweave/wallet/balance", handleBalance(s.wallets, s.logger))
	route("GET /api/v1/arweave/wallet/{address}/transactions", "/api/v1/arweave/wallet/transactions", handleTransactions(s.wallets, s.logger))

	if s.receipts != nil {
		route("GET /api/v1/arweave/wallet/{address}/receipts", "/api/v1/arweave/wallet/receipts", handleListReceipts(s.receipts, s.logger))
	}

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint (if metrics collector is configured)
	if s.metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return corsMiddleware(mux)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	if s.publisher == nil {
		s.logger.Warn("NATS publisher not configured, profile events disabled")
	}
	if s.metrics != nil {
		s.logger.Info("Prometheus metrics endpoint enabled")
	}

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting HTTP server", "addr", s.addr, "api", "/api/v1/arweave")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// corsMiddleware adds CORS headers to all responses and handles OPTIONS preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
