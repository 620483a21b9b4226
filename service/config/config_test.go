package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":3000", cfg.ServerAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:1984", cfg.NodeURL)
	assert.Equal(t, "http://localhost:1984/graphql", cfg.GraphQLURL)
	assert.Equal(t, "CurioWeave", cfg.AppName)
	assert.Equal(t, "1000000000000000", cfg.MintAmount)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, uint64(42), cfg.FeedSeed)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.NATSURL)
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("SERVER_ADDR", ":9000")
	os.Setenv("ARWEAVE_NODE_URL", "http://arlocal:1984/")
	os.Setenv("APP_NAME", "CurioTest")
	os.Setenv("REQUEST_TIMEOUT", "3s")
	os.Setenv("NATS_URL", "nats://localhost:4222")
	os.Setenv("FEED_SEED", "7")
	defer cleanupEnv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, "http://arlocal:1984", cfg.NodeURL, "trailing slash is trimmed")
	assert.Equal(t, "http://arlocal:1984/graphql", cfg.GraphQLURL, "GraphQL URL derives from node URL")
	assert.Equal(t, "CurioTest", cfg.AppName)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, uint64(7), cfg.FeedSeed)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad timeout", "REQUEST_TIMEOUT", "soon", "invalid duration"},
		{"bad node url", "ARWEAVE_NODE_URL", "localhost", "ARWEAVE_NODE_URL: invalid URL"},
		{"bad mint amount", "MINT_AMOUNT_WINSTON", "1e15", "invalid winston amount"},
		{"negative seed", "FEED_SEED", "-1", "FEED_SEED: invalid integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanupEnv()
			os.Setenv(tt.key, tt.value)
			defer cleanupEnv()

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_CollectsAllErrors(t *testing.T) {
	os.Setenv("REQUEST_TIMEOUT", "soon")
	os.Setenv("FEED_SEED", "abc")
	defer cleanupEnv()

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
	assert.Contains(t, err.Error(), "FEED_SEED")
}

func TestMustLoad_Panics(t *testing.T) {
	os.Setenv("REQUEST_TIMEOUT", "soon")
	defer cleanupEnv()

	assert.Panics(t, func() { MustLoad() })
}

func TestValidate(t *testing.T) {
	valid := &Config{
		NodeURL:        "http://localhost:1984",
		GraphQLURL:     "http://localhost:1984/graphql",
		AppName:        "CurioWeave",
		RequestTimeout: 10 * time.Second,
	}
	assert.NoError(t, valid.Validate())

	invalid := &Config{RequestTimeout: 100 * time.Millisecond}
	err := invalid.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NodeURL is required")
	assert.Contains(t, err.Error(), "AppName is required")
	assert.Contains(t, err.Error(), "RequestTimeout must be at least 1 second")
}

func TestLoadDotEnv(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=FromDotEnv\nLOG_LEVEL=debug\n"), 0o600))

	os.Setenv("LOG_LEVEL", "warn")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "FromDotEnv", cfg.AppName)
	assert.Equal(t, "warn", cfg.LogLevel, "existing variables win over .env")
}

func cleanupEnv() {
	for _, key := range []string{
		"SERVER_ADDR",
		"LOG_LEVEL",
		"ARWEAVE_NODE_URL",
		"ARWEAVE_GRAPHQL_URL",
		"APP_NAME",
		"MINT_AMOUNT_WINSTON",
		"REQUEST_TIMEOUT",
		"DATABASE_URL",
		"NATS_URL",
		"FEED_SEED",
	} {
		os.Unsetenv(key)
	}
}
