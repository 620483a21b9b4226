package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brojonat/curioweave/service/arweave"
	"github.com/brojonat/curioweave/service/config"
	"github.com/brojonat/curioweave/service/db"
	"github.com/brojonat/curioweave/service/feed"
	"github.com/brojonat/curioweave/service/metrics"
	natspkg "github.com/brojonat/curioweave/service/nats"
	"github.com/brojonat/curioweave/service/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	// Load and validate configuration from environment
	// This fails fast if any config value is invalid
	cfg := config.MustLoad()

	logger := setupLogger(cfg.LogLevel)
	logger.Info("starting server",
		"addr", cfg.ServerAddr,
		"log_level", cfg.LogLevel,
		"node_url", cfg.NodeURL,
	)

	m := metrics.NewMetrics(nil)

	node := arweave.NewNodeClient(cfg.NodeURL, cfg.GraphQLURL, cfg.RequestTimeout)
	wallets := arweave.NewClient(node, arweave.ClientConfig{
		AppName:    cfg.AppName,
		MintAmount: cfg.MintAmount,
		Endpoint:   endpointLabel(cfg.NodeURL),
	}, m, logger)

	store := feed.NewStore(feed.Generate(cfg.FeedSeed))
	logger.Info("sample feed generated", "items", store.Len(), "seed", cfg.FeedSeed)

	// NATS is optional; the echo endpoint works without it
	var publisher natspkg.Publisher
	if cfg.NATSURL != "" {
		p, err := natspkg.NewPublisher(cfg.NATSURL, m, logger)
		if err != nil {
			logger.Warn("NATS unavailable, profile events disabled", "url", cfg.NATSURL, "error", err)
		} else {
			publisher = p
			defer p.Close()
		}
	}

	httpServer := server.New(cfg.ServerAddr, wallets, store, publisher, m, logger)

	// The receipt journal is read-only here; the CLI writes it
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		receipts := db.NewStore(pool, m)
		if err := receipts.EnsureSchema(context.Background()); err != nil {
			logger.Error("failed to ensure receipt schema", "error", err)
			os.Exit(1)
		}
		httpServer.WithReceipts(receipts)
		logger.Info("receipt journal enabled")
	}

	// Start HTTP server in background
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.Start()
	}()

	// Wait for shutdown signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		// Graceful shutdown with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown server gracefully", "error", err)
			os.Exit(1)
		}

		logger.Info("server shutdown complete")
	}
}

// setupLogger creates a structured logger with the given log level.
func setupLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// endpointLabel reduces a node URL to host:port for metric labels.
func endpointLabel(nodeURL string) string {
	u, err := url.Parse(nodeURL)
	if err != nil || u.Host == "" {
		return nodeURL
	}
	return u.Host
}
