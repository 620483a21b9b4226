package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/brojonat/curioweave/client"
	"github.com/brojonat/curioweave/service/arweave"
	"github.com/brojonat/curioweave/service/db"
	"github.com/brojonat/curioweave/service/session"
	"github.com/urfave/cli/v2"
)

const defaultTimeout = 10 * time.Second

// newLogger logs errors only unless --verbose is set.
func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelError
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

// newWalletClient builds a ledger wallet client from the global flags.
func newWalletClient(c *cli.Context, logger *slog.Logger) *arweave.Client {
	nodeURL := c.String("node-url")
	node := arweave.NewNodeClient(nodeURL, c.String("graphql-url"), c.Duration("timeout"))

	endpoint := nodeURL
	if u, err := url.Parse(nodeURL); err == nil && u.Host != "" {
		endpoint = u.Host
	}

	return arweave.NewClient(node, arweave.ClientConfig{
		AppName:    c.String("app-name"),
		MintAmount: c.String("mint-amount"),
		Endpoint:   endpoint,
	}, nil, logger)
}

// newAPIClient builds a backend API client from the global flags.
func newAPIClient(c *cli.Context, logger *slog.Logger) *client.Client {
	return client.NewClient(c.String("api-url"), &http.Client{Timeout: c.Duration("timeout")}, logger)
}

// loadSession reads the key file and returns a connected session.
func loadSession(c *cli.Context) (*session.Session, error) {
	path := c.String("key-file")
	key, err := arweave.LoadKeyFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet (run 'curioweave wallet generate' first): %w", err)
	}
	address, err := key.Address()
	if err != nil {
		return nil, fmt.Errorf("invalid wallet key in %s: %w", path, err)
	}

	sess := session.New()
	sess.Connect(key, address)
	return sess, nil
}

// resolveAddress returns the first argument, or the key file's address.
func resolveAddress(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return c.Args().First(), nil
	}
	sess, err := loadSession(c)
	if err != nil {
		return "", err
	}
	return sess.Address(), nil
}

// getStore connects to the receipt journal.
func getStore(c *cli.Context) (*db.Store, func(), error) {
	dbURL := c.String("database-url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return nil, nil, fmt.Errorf("database-url is required (set DATABASE_URL env var or use --database-url)")
	}

	pool, err := db.Connect(context.Background(), dbURL)
	if err != nil {
		return nil, nil, err
	}

	store := db.NewStore(pool, nil)
	if err := store.EnsureSchema(context.Background()); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return store, pool.Close, nil
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
