package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// All required fields are validated at startup to ensure fail-fast behavior.
type Config struct {
	// Server configuration
	ServerAddr string
	LogLevel   string

	// Ledger node configuration
	NodeURL    string
	GraphQLURL string
	AppName    string
	MintAmount string // winston minted into fresh or empty wallets on test nodes

	// Client-wide request timeout for ledger and backend calls
	RequestTimeout time.Duration

	// Optional integrations; empty disables them
	DatabaseURL string
	NATSURL     string

	// Seed for the generated sample feed
	FeedSeed uint64
}

// Load reads configuration from environment variables and validates all required fields.
// Returns an error if any configuration value is invalid.
func Load() (*Config, error) {
	cfg := &Config{}
	var errs []error

	// Server configuration
	cfg.ServerAddr = getEnvOrDefault("SERVER_ADDR", ":3000")
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Ledger node configuration
	cfg.NodeURL = strings.TrimRight(getEnvOrDefault("ARWEAVE_NODE_URL", "http://localhost:1984"), "/")
	if err := validateURL("ARWEAVE_NODE_URL", cfg.NodeURL); err != nil {
		errs = append(errs, err)
	}

	cfg.GraphQLURL = getEnvOrDefault("ARWEAVE_GRAPHQL_URL", cfg.NodeURL+"/graphql")
	if err := validateURL("ARWEAVE_GRAPHQL_URL", cfg.GraphQLURL); err != nil {
		errs = append(errs, err)
	}

	cfg.AppName = getEnvOrDefault("APP_NAME", "CurioWeave")

	cfg.MintAmount = getEnvOrDefault("MINT_AMOUNT_WINSTON", "1000000000000000")
	if !isDigits(cfg.MintAmount) {
		errs = append(errs, fmt.Errorf("MINT_AMOUNT_WINSTON: invalid winston amount %q", cfg.MintAmount))
	}

	timeout, err := parseDuration("REQUEST_TIMEOUT", "10s")
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.RequestTimeout = timeout
	}

	// Optional integrations
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.NATSURL = os.Getenv("NATS_URL")

	seed, err := parseUint("FEED_SEED", 42)
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.FeedSeed = seed
	}

	// Return all validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %v", errs)
	}

	return cfg, nil
}

// LoadDotEnv loads .env style files into the environment. Missing files
// are skipped and variables that are already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// MustLoad is like Load but panics if configuration is invalid.
// Useful for server initialization where misconfiguration should halt startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Validate checks if the configuration is valid.
// This is useful for testing configuration without loading from env.
func (c *Config) Validate() error {
	var errs []error

	if c.NodeURL == "" {
		errs = append(errs, fmt.Errorf("NodeURL is required"))
	}

	if c.GraphQLURL == "" {
		errs = append(errs, fmt.Errorf("GraphQLURL is required"))
	}

	if c.AppName == "" {
		errs = append(errs, fmt.Errorf("AppName is required"))
	}

	if c.RequestTimeout < time.Second {
		errs = append(errs, fmt.Errorf("RequestTimeout must be at least 1 second"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errs)
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration from an environment variable or uses a default.
func parseDuration(key, defaultValue string) (time.Duration, error) {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return duration, nil
}

// parseUint parses an unsigned integer from an environment variable or uses a default.
func parseUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	return result, nil
}

func validateURL(key, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s: invalid URL %q", key, value)
	}
	return nil
}

// isDigits reports whether s is a non-empty run of decimal digits.
// Winston amounts exceed int64, so they are kept as strings.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
