package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/brojonat/curioweave/service/arweave"
	"github.com/brojonat/curioweave/service/db"
	"github.com/brojonat/curioweave/service/feed"
	"github.com/brojonat/curioweave/service/metrics"
	natspkg "github.com/brojonat/curioweave/service/nats"
	"github.com/google/uuid"
)

const (
	maxRequestBodySize = 1 << 20 // 1MB
	maxFeedLimit       = 120
	maxTxLimit         = 100
	maxReceiptLimit    = 200
)

// Ledger addresses are 43 base64url characters.
var validAddressRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{43}$`)

// WalletService is the subset of the ledger wallet client the API exposes.
type WalletService interface {
	GetBalance(ctx context.Context, address string) string
	QueryTransactions(ctx context.Context, address string, limit int) []arweave.ProcessedTransaction
}

// ReceiptStore reads the submission receipt journal.
type ReceiptStore interface {
	ListReceiptsByWallet(ctx context.Context, params db.ListReceiptsByWalletParams) ([]*db.Receipt, error)
}

// profileRequest is the body of a profile submission. Older clients send
// the interest list under "interest".
type profileRequest struct {
	WalletAddress string   `json:"walletAddress"`
	FullName      string   `json:"fullName"`
	Username      string   `json:"username"`
	Interests     []string `json:"interests"`
	Interest      []string `json:"interest"`
}

// profileData is the echoed profile.
type profileData struct {
	WalletAddress string   `json:"walletAddress"`
	FullName      string   `json:"fullName"`
	Username      string   `json:"username"`
	Interests     []string `json:"interests"`
}

type profileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *profileData `json:"data,omitempty"`
}

// handleCreateProfile echoes a submitted profile back. Nothing is stored.
// When a publisher is configured a profile event is published best-effort.
// POST /api/v1/arweave/user/profile
func handleCreateProfile(publisher natspkg.Publisher, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("error creating profile", "error", err)
			if m != nil {
				m.RecordProfileEcho("error")
			}
			writeJSON(w, profileResponse{Success: false, Message: "Error creating profile"}, http.StatusInternalServerError)
			return
		}

		data := &profileData{
			WalletAddress: req.WalletAddress,
			FullName:      req.FullName,
			Username:      req.Username,
			Interests:     req.Interests,
		}
		if data.Interests == nil {
			data.Interests = req.Interest
		}

		logger.Info("profile received",
			"wallet_address", data.WalletAddress,
			"username", data.Username,
			"interests", len(data.Interests),
		)

		// The address becomes a subject token; anything else would not route.
		if publisher != nil && validAddressRegex.MatchString(data.WalletAddress) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			event := natspkg.NewProfileEvent(data.WalletAddress, data.Username, data.FullName, data.Interests, requestID)
			if err := publisher.PublishProfile(r.Context(), event); err != nil {
				logger.Warn("failed to publish profile event",
					"wallet_address", data.WalletAddress,
					"error", err,
				)
			}
		}

		if m != nil {
			m.RecordProfileEcho("success")
		}
		writeJSON(w, profileResponse{
			Success: true,
			Message: "Profile created successfully",
			Data:    data,
		}, http.StatusCreated)
	})
}

// handleFeed returns a page of the sample feed.
// GET /api/v1/arweave/feed?category={label}&q={search}&limit={n}&offset={n}
func handleFeed(store *feed.Store, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		limit, err := parseIntParam(query.Get("limit"), 0, maxFeedLimit)
		if err != nil {
			writeError(w, fmt.Sprintf("invalid limit parameter: %v", err), http.StatusBadRequest)
			return
		}
		offset, err := parseIntParam(query.Get("offset"), 0, -1)
		if err != nil {
			writeError(w, fmt.Sprintf("invalid offset parameter: %v", err), http.StatusBadRequest)
			return
		}

		q := feed.Query{
			Category: query.Get("category"),
			Search:   query.Get("q"),
			Limit:    limit,
			Offset:   offset,
		}
		result := store.Find(q)

		if m != nil {
			m.RecordFeedQuery(feedMode(q), len(result.Items))
		}
		logger.Debug("feed queried",
			"category", q.Category,
			"search", q.Search,
			"total", result.Total,
			"returned", len(result.Items),
		)

		writeJSON(w, result, http.StatusOK)
	})
}

// handleFeedItem returns one feed item by id.
// GET /api/v1/arweave/feed/{id}
func handleFeedItem(store *feed.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		item, ok := store.Get(r.PathValue("id"))
		if !ok {
			writeError(w, "feed item not found", http.StatusNotFound)
			return
		}
		writeJSON(w, item, http.StatusOK)
	})
}

// handleCategories returns the filter options for a set of interests.
// GET /api/v1/arweave/categories?interests=ai,web3
func handleCategories() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var interests []string
		for _, id := range strings.Split(r.URL.Query().Get("interests"), ",") {
			if id = strings.TrimSpace(id); id != "" {
				interests = append(interests, id)
			}
		}

		writeJSON(w, map[string]any{
			"categories": feed.CategoriesFor(interests),
		}, http.StatusOK)
	})
}

// handleBalance returns the AR balance of a wallet.
// GET /api/v1/arweave/wallet/{address}/balance
func handleBalance(wallets WalletService, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := r.PathValue("address")
		if err := validateAddress(address); err != nil {
			logger.Debug("invalid address", "address", address, "error", err)
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, map[string]string{
			"address": address,
			"balance": wallets.GetBalance(r.Context(), address),
		}, http.StatusOK)
	})
}

// handleTransactions returns the classified transactions of a wallet.
// GET /api/v1/arweave/wallet/{address}/transactions?limit={n}
func handleTransactions(wallets WalletService, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := r.PathValue("address")
		if err := validateAddress(address); err != nil {
			logger.Debug("invalid address", "address", address, "error", err)
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		limit, err := parseIntParam(r.URL.Query().Get("limit"), 0, maxTxLimit)
		if err != nil {
			writeError(w, fmt.Sprintf("invalid limit parameter: %v", err), http.StatusBadRequest)
			return
		}

		txs := wallets.QueryTransactions(r.Context(), address, limit)
		logger.Debug("transactions listed", "address", address, "count", len(txs))

		writeJSON(w, map[string]any{
			"transactions": txs,
			"count":        len(txs),
		}, http.StatusOK)
	})
}

// handleListReceipts lists journaled submissions for a wallet, newest first.
func handleListReceipts(store ReceiptStore, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := r.PathValue("address")
		if err := validateAddress(address); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		kind := r.URL.Query().Get("kind")
		if kind != "" && kind != db.KindProfile && kind != db.KindContent {
			writeError(w, fmt.Sprintf("invalid kind %q", kind), http.StatusBadRequest)
			return
		}

		limit, err := parseIntParam(r.URL.Query().Get("limit"), 1, maxReceiptLimit)
		if err != nil {
			writeError(w, fmt.Sprintf("invalid limit parameter: %v", err), http.StatusBadRequest)
			return
		}
		offset, err := parseIntParam(r.URL.Query().Get("offset"), 0, math.MaxInt32)
		if err != nil {
			writeError(w, fmt.Sprintf("invalid offset parameter: %v", err), http.StatusBadRequest)
			return
		}

		receipts, err := store.ListReceiptsByWallet(r.Context(), db.ListReceiptsByWalletParams{
			WalletAddress: address,
			Kind:          kind,
			Limit:         int32(limit),
			Offset:        int32(offset),
		})
		if err != nil {
			logger.Error("failed to list receipts", "address", address, "error", err)
			writeError(w, "failed to list receipts", http.StatusInternalServerError)
			return
		}

		writeJSON(w, map[string]any{
			"receipts": receipts,
			"count":    len(receipts),
		}, http.StatusOK)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// validateAddress checks that address looks like a ledger wallet address.
func validateAddress(address string) error {
	if address == "" {
		return errors.New("address is required")
	}
	if !validAddressRegex.MatchString(address) {
		return errors.New("invalid address format: must be 43 base64url characters")
	}
	return nil
}

// parseIntParam parses an optional non-negative integer. An empty value
// yields 0. A hi < 0 means unbounded.
func parseIntParam(s string, lo, hi int) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if n < lo {
		return 0, fmt.Errorf("must be at least %d", lo)
	}
	if hi >= 0 && n > hi {
		return 0, fmt.Errorf("must be at most %d", hi)
	}
	return n, nil
}

func feedMode(q feed.Query) string {
	category := q.Category != "" && q.Category != feed.AllCategories
	search := strings.TrimSpace(q.Search) != ""
	switch {
	case category && search:
		return "category_search"
	case category:
		return "category"
	case search:
		return "search"
	default:
		return "all"
	}
}
