package arweave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brojonat/curioweave/service/metrics"
)

const (
	defaultQueryLimit = 10
	defaultMint       = "1000000000000000"
)

// ClientConfig holds the settings a Client needs besides its node.
type ClientConfig struct {
	AppName    string // value of the App-Name tag on every posted transaction
	MintAmount string // winston requested from the node's mint endpoint
	Endpoint   string // node identifier for metrics labels (e.g. "localhost:1984")
}

// Client provides wallet operations against a ledger node.
// It wraps the NodeClient with logging, metrics, and the app's tagging
// and classification rules.
type Client struct {
	node       NodeClient
	classifier Classifier
	mintAmount string
	endpoint   string
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewClient creates a new wallet client.
// If metrics is nil, no metrics will be recorded.
func NewClient(node NodeClient, cfg ClientConfig, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.MintAmount == "" {
		cfg.MintAmount = defaultMint
	}
	return &Client{
		node:       node,
		classifier: Classifier{AppName: cfg.AppName},
		mintAmount: cfg.MintAmount,
		endpoint:   cfg.Endpoint,
		metrics:    m,
		logger:     logger,
	}
}

// AppName returns the application name used for tagging and classification.
func (c *Client) AppName() string {
	return c.classifier.AppName
}

// GenerateWallet creates a new key and derives its address, then mints
// test funds into it. A failed mint is logged and does not fail the call.
func (c *Client) GenerateWallet(ctx context.Context) (*Wallet, error) {
	key, err := GenerateKey()
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to generate wallet", "error", err)
		return nil, err
	}
	address, err := key.Address()
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to derive wallet address", "error", err)
		return nil, err
	}

	c.logger.InfoContext(ctx, "generated wallet", "address", address)

	if !c.mint(ctx, address, "new_wallet") {
		c.logger.WarnContext(ctx, "could not mint test funds for new wallet; is the node a test node?",
			"address", address,
		)
	}

	return &Wallet{Key: key, Address: address}, nil
}

// GetBalance returns the balance of address in AR. Any failure is logged
// and reported as "0".
func (c *Client) GetBalance(ctx context.Context, address string) string {
	start := time.Now()
	winston, err := c.node.Balance(ctx, address)
	c.recordCall("balance", start, err)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to check wallet balance",
			"address", address,
			"error", err,
		)
		return "0"
	}

	ar, err := WinstonToAR(winston)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to convert balance",
			"address", address,
			"winston", winston,
			"error", err,
		)
		return "0"
	}

	c.logger.DebugContext(ctx, "checked wallet balance",
		"address", address,
		"winston", winston,
		"ar", ar,
	)
	return ar
}

// Mint requests winston test funds for address. It reports whether the
// node accepted the request; failures are logged.
func (c *Client) Mint(ctx context.Context, address, winston string) bool {
	start := time.Now()
	err := c.node.Mint(ctx, address, winston)
	c.recordCall("mint", start, err)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to mint tokens",
			"address", address,
			"winston", winston,
			"error", err,
		)
		return false
	}
	c.logger.InfoContext(ctx, "tokens minted", "address", address, "winston", winston)
	return true
}

func (c *Client) mint(ctx context.Context, address, reason string) bool {
	ok := c.Mint(ctx, address, c.mintAmount)
	if c.metrics != nil {
		c.metrics.RecordMint(reason, ok)
	}
	return ok
}

// CreateAndPost builds, signs and posts a data transaction carrying data.
// Every transaction is tagged Content-Type application/json and App-Name;
// tags are appended after those. An empty wallet gets one mint attempt.
//
// Errors wrap ErrNoFunds or ErrRejected where they apply; every failure is
// also logged here so callers may treat a non-nil error as a plain "no result".
func (c *Client) CreateAndPost(ctx context.Context, data []byte, tags []Tag, key *JWK) (*PostResponse, error) {
	resp, err := c.createAndPost(ctx, data, tags, key)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to create transaction", "error", err)
		if c.metrics != nil {
			c.metrics.RecordPost(postOutcome(err), len(data))
		}
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.RecordPost("accepted", len(data))
	}
	return resp, nil
}

func (c *Client) createAndPost(ctx context.Context, data []byte, tags []Tag, key *JWK) (*PostResponse, error) {
	address, err := key.Address()
	if err != nil {
		return nil, fmt.Errorf("invalid wallet key: %w", err)
	}

	if c.GetBalance(ctx, address) == "0" {
		c.logger.InfoContext(ctx, "wallet is empty, attempting to mint tokens", "address", address)
		c.mint(ctx, address, "empty_balance")
		if c.GetBalance(ctx, address) == "0" {
			return nil, fmt.Errorf("%w: please fund wallet %s", ErrNoFunds, address)
		}
	}

	start := time.Now()
	anchor, err := c.node.TxAnchor(ctx)
	c.recordCall("tx_anchor", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction anchor: %w", err)
	}

	start = time.Now()
	reward, err := c.node.Price(ctx, len(data))
	c.recordCall("price", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction price: %w", err)
	}

	tx, err := NewTransaction(data, key, anchor, reward)
	if err != nil {
		return nil, err
	}
	tx.AddTag(tagContentType, contentJSON)
	tx.AddTag(tagAppName, c.classifier.AppName)
	for _, t := range tags {
		tx.AddTag(t.Name, t.Value)
	}

	if err := tx.Sign(key); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	c.logger.DebugContext(ctx, "posting transaction",
		"id", tx.ID,
		"data_size", tx.DataSize,
		"reward", reward,
		"tags", tx.DecodedTags(),
	)

	start = time.Now()
	status, err := c.node.PostTransaction(ctx, tx)
	c.recordCall("post_tx", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}
	if status != 200 && status != 202 {
		return nil, fmt.Errorf("%w: status %d", ErrRejected, status)
	}

	c.logger.InfoContext(ctx, "transaction submitted",
		"id", tx.ID,
		"status", status,
		"owner", address,
	)
	return &PostResponse{Status: status, ID: tx.ID}, nil
}

// QueryTransactions returns up to limit recent ledger transactions that
// involve address, classified for display. A limit <= 0 means 10.
// Failures are logged and yield an empty list.
func (c *Client) QueryTransactions(ctx context.Context, address string, limit int) []ProcessedTransaction {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	start := time.Now()
	raw, err := c.node.QueryTransactions(ctx, limit)
	c.recordCall("graphql", start, err)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to fetch transactions",
			"address", address,
			"error", err,
		)
		return []ProcessedTransaction{}
	}

	processed := c.classifier.Classify(raw, address)

	if c.metrics != nil {
		c.metrics.RecordTransactionsQueried(c.endpoint, len(raw))
		for _, p := range processed {
			c.metrics.RecordTransactionClassified(string(p.Type), string(p.Status))
		}
	}

	c.logger.DebugContext(ctx, "fetched transactions",
		"address", address,
		"raw_count", len(raw),
		"relevant_count", len(processed),
	)
	return processed
}

func (c *Client) recordCall(operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordLedgerCall(operation, status, c.endpoint, metrics.Since(start))
}

func postOutcome(err error) string {
	switch {
	case errors.Is(err, ErrNoFunds):
		return "no_funds"
	case errors.Is(err, ErrRejected):
		return "rejected"
	default:
		return "error"
	}
}
