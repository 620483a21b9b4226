package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brojonat/curioweave/service/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a receipt does not exist.
var ErrNotFound = errors.New("receipt not found")

// ErrDuplicate is returned when a receipt for the transaction id already exists.
var ErrDuplicate = errors.New("receipt already exists")

// Receipt kinds.
const (
	KindProfile = "profile"
	KindContent = "content"
)

// Store provides the submission receipts journal: a local record of the
// ledger transactions this installation has posted.
type Store struct {
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
}

// NewStore creates a new Store with the given database connection pool.
// If metrics is nil, no metrics will be recorded.
func NewStore(pool *pgxpool.Pool, m *metrics.Metrics) *Store {
	return &Store{
		pool:    pool,
		metrics: m,
	}
}

// Connect opens a pool for databaseURL and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Receipt records one posted ledger transaction.
type Receipt struct {
	TxID          string    `json:"tx_id"`
	WalletAddress string    `json:"wallet_address"`
	Kind          string    `json:"kind"`  // "profile" or "content"
	Title         string    `json:"title"` // content title or profile username
	DataSize      int64     `json:"data_size"`
	NodeStatus    int       `json:"node_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateReceiptParams contains the parameters for recording a receipt.
type CreateReceiptParams struct {
	TxID          string
	WalletAddress string
	Kind          string
	Title         string
	DataSize      int64
	NodeStatus    int
}

// ListReceiptsByWalletParams contains pagination parameters.
type ListReceiptsByWalletParams struct {
	WalletAddress string
	Kind          string // empty means all kinds
	Limit         int32
	Offset        int32
}

const schema = `
CREATE TABLE IF NOT EXISTS submission_receipts (
    tx_id          TEXT PRIMARY KEY,
    wallet_address TEXT NOT NULL,
    kind           TEXT NOT NULL CHECK (kind IN ('profile', 'content')),
    title          TEXT NOT NULL DEFAULT '',
    data_size      BIGINT NOT NULL DEFAULT 0,
    node_status    INTEGER NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_submission_receipts_wallet_created
    ON submission_receipts (wallet_address, created_at DESC);
`

// EnsureSchema creates the receipts table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	start := time.Now()
	_, err := s.pool.Exec(ctx, schema)
	s.record("ensure_schema", start, err)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// CreateReceipt inserts a new receipt.
func (s *Store) CreateReceipt(ctx context.Context, params CreateReceiptParams) (*Receipt, error) {
	start := time.Now()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO submission_receipts (tx_id, wallet_address, kind, title, data_size, node_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING tx_id, wallet_address, kind, title, data_size, node_status, created_at`,
		params.TxID, params.WalletAddress, params.Kind, params.Title, params.DataSize, params.NodeStatus,
	)
	r, err := scanReceipt(row)
	s.record("insert", start, err)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, params.TxID)
		}
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	return r, nil
}

// GetReceipt retrieves a receipt by transaction id.
func (s *Store) GetReceipt(ctx context.Context, txID string) (*Receipt, error) {
	start := time.Now()
	row := s.pool.QueryRow(ctx, `
		SELECT tx_id, wallet_address, kind, title, data_size, node_status, created_at
		FROM submission_receipts
		WHERE tx_id = $1`, txID)
	r, err := scanReceipt(row)
	s.record("select", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return r, nil
}

// ListReceiptsByWallet returns a wallet's receipts, newest first.
func (s *Store) ListReceiptsByWallet(ctx context.Context, params ListReceiptsByWalletParams) ([]*Receipt, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}

	start := time.Now()
	rows, err := s.pool.Query(ctx, `
		SELECT tx_id, wallet_address, kind, title, data_size, node_status, created_at
		FROM submission_receipts
		WHERE wallet_address = $1 AND ($2 = '' OR kind = $2)
		ORDER BY created_at DESC, tx_id
		LIMIT $3 OFFSET $4`,
		params.WalletAddress, params.Kind, params.Limit, params.Offset,
	)
	if err != nil {
		s.record("list", start, err)
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	receipts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Receipt, error) {
		return scanReceipt(row)
	})
	s.record("list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipts: %w", err)
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt by transaction id.
func (s *Store) DeleteReceipt(ctx context.Context, txID string) error {
	start := time.Now()
	tag, err := s.pool.Exec(ctx, `DELETE FROM submission_receipts WHERE tx_id = $1`, txID)
	s.record("delete", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReceipt(row pgx.Row) (*Receipt, error) {
	var r Receipt
	if err := row.Scan(
		&r.TxID,
		&r.WalletAddress,
		&r.Kind,
		&r.Title,
		&r.DataSize,
		&r.NodeStatus,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) record(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
	}
	s.metrics.RecordDBQuery(operation, "submission_receipts", metrics.Since(start), err)
}
