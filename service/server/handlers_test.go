package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/brojonat/curioweave/service/arweave"
	"github.com/brojonat/curioweave/service/db"
	"github.com/brojonat/curioweave/service/feed"
	"github.com/brojonat/curioweave/service/metrics"
	natspkg "github.com/brojonat/curioweave/service/nats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQ"

type mockWallets struct {
	mu        sync.Mutex
	balance   string
	txs       []arweave.ProcessedTransaction
	lastLimit int
}

func (m *mockWallets) GetBalance(ctx context.Context, address string) string {
	return m.balance
}

func (m *mockWallets) QueryTransactions(ctx context.Context, address string, limit int) []arweave.ProcessedTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	return m.txs
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(publisher natspkg.Publisher, m *metrics.Metrics) (*Server, *mockWallets) {
	wallets := &mockWallets{balance: "1.5"}
	store := feed.NewStore(feed.Generate(42))
	return New(":0", wallets, store, publisher, m, testLogger()), wallets
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateProfile_Echo(t *testing.T) {
	srv, _ := newTestServer(nil, nil)

	body := `{"walletAddress":"addr-1","fullName":"Alice","username":"alice","interests":["ai","web3"]}`
	w := do(t, srv.Handler(), "POST", "/api/v1/arweave/user/profile", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Profile created successfully", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, profileData{
		WalletAddress: "addr-1",
		FullName:      "Alice",
		Username:      "alice",
		Interests:     []string{"ai", "web3"},
	}, *resp.Data)
}

func TestCreateProfile_LegacyInterestKey(t *testing.T) {
	srv, _ := newTestServer(nil, nil)

	body := `{"walletAddress":"addr-1","fullName":"Alice","username":"alice","interest":["defi"]}`
	w := do(t, srv.Handler(), "POST", "/api/v1/arweave/user/profile", body)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"defi"}, resp.Data.Interests)
}

func TestCreateProfile_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"wrong types", `{"username": 42}`},
		{"empty", ""},
		{"too large", `{"fullName":"` + strings.Repeat("a", maxRequestBodySize) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(nil, nil)
			w := do(t, srv.Handler(), "POST", "/api/v1/arweave/user/profile", tt.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, "Error creating profile", resp["message"])
			assert.NotContains(t, resp, "data")
		})
	}
}

func TestCreateProfile_PublishesEvent(t *testing.T) {
	publisher := natspkg.NewMockPublisher()
	srv, _ := newTestServer(publisher, nil)

	req := httptest.NewRequest("POST", "/api/v1/arweave/user/profile",
		strings.NewReader(`{"walletAddress":"`+testAddress+`","fullName":"Alice","username":"alice","interests":["ai"]}`))
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, testAddress, events[0].WalletAddress)
	assert.Equal(t, "alice", events[0].Username)
	assert.Equal(t, "req-42", events[0].RequestID)
	assert.Equal(t, []string{"ai"}, events[0].Interests)
}

func TestCreateProfile_SkipsEventForBadAddress(t *testing.T) {
	publisher := natspkg.NewMockPublisher()
	srv, _ := newTestServer(publisher, nil)
	h := srv.Handler()

	for _, address := range []string{"", "addr-1", "a.b", "wallet *", strings.Repeat("a", 42) + ">"} {
		w := do(t, h, "POST", "/api/v1/arweave/user/profile",
			`{"walletAddress":"`+address+`","username":"alice"}`)
		assert.Equal(t, http.StatusCreated, w.Code, "address %q", address)
	}
	assert.Empty(t, publisher.Events())
}

func TestCreateProfile_PublishFailureStillEchoes(t *testing.T) {
	publisher := natspkg.NewMockPublisher()
	publisher.FailWith(errors.New("nats down"))
	srv, _ := newTestServer(publisher, nil)

	w := do(t, srv.Handler(), "POST", "/api/v1/arweave/user/profile",
		`{"walletAddress":"`+testAddress+`","username":"alice"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, publisher.Events())
}

func TestFeedItem(t *testing.T) {
	srv, _ := newTestServer(nil, nil)
	h := srv.Handler()

	w := do(t, h, "GET", "/api/v1/arweave/feed/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var item feed.Item
	require.NoError(t, json.NewDecoder(w.Body).Decode(&item))
	assert.Equal(t, "1", item.ID)
	assert.Equal(t, "AI Insight 1", item.Title)

	w = do(t, h, "GET", "/api/v1/arweave/feed/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "feed item not found")
}

func TestFeed(t *testing.T) {
	srv, _ := newTestServer(nil, nil)
	h := srv.Handler()

	t.Run("all items", func(t *testing.T) {
		w := do(t, h, "GET", "/api/v1/arweave/feed", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res feed.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 120, res.Total)
		assert.Len(t, res.Items, 120)
	})

	t.Run("category page", func(t *testing.T) {
		w := do(t, h, "GET", "/api/v1/arweave/feed?category=DeFi&limit=3&offset=3", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res feed.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 10, res.Total)
		require.Len(t, res.Items, 3)
		for _, it := range res.Items {
			assert.Equal(t, "defi", it.Category)
		}
	})

	t.Run("search", func(t *testing.T) {
		w := do(t, h, "GET", "/api/v1/arweave/feed?q=metaverse+insight+1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res feed.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		// "Metaverse Insight 1" and "Metaverse Insight 10"
		assert.Equal(t, 2, res.Total)
	})

	t.Run("invalid params", func(t *testing.T) {
		for _, target := range []string{
			"/api/v1/arweave/feed?limit=abc",
			"/api/v1/arweave/feed?limit=-1",
			"/api/v1/arweave/feed?limit=1000",
			"/api/v1/arweave/feed?offset=-3",
		} {
			w := do(t, h, "GET", target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, target)
		}
	})
}

func TestCategories(t *testing.T) {
	srv, _ := newTestServer(nil, nil)

	w := do(t, srv.Handler(), "GET", "/api/v1/arweave/categories?interests=ai,+bogus,defi", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"All", "AI", "DeFi"}, resp.Categories)

	w = do(t, srv.Handler(), "GET", "/api/v1/arweave/categories", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"All"}, resp.Categories)
}

func TestBalance(t *testing.T) {
	srv, _ := newTestServer(nil, nil)

	w := do(t, srv.Handler(), "GET", "/api/v1/arweave/wallet/"+testAddress+"/balance", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testAddress, resp["address"])
	assert.Equal(t, "1.5", resp["balance"])

	w = do(t, srv.Handler(), "GET", "/api/v1/arweave/wallet/short/balance", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactions(t *testing.T) {
	srv, wallets := newTestServer(nil, nil)
	wallets.txs = []arweave.ProcessedTransaction{
		{ID: "tx1", Type: arweave.TxSent, Status: arweave.StatusCompleted},
	}

	w := do(t, srv.Handler(), "GET", "/api/v1/arweave/wallet/"+testAddress+"/transactions?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, wallets.lastLimit)

	var resp struct {
		Transactions []arweave.ProcessedTransaction `json:"transactions"`
		Count        int                            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, arweave.TxSent, resp.Transactions[0].Type)

	w = do(t, srv.Handler(), "GET", "/api/v1/arweave/wallet/"+testAddress+"/transactions?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSAndHealth(t *testing.T) {
	srv, _ := newTestServer(nil, nil)
	h := srv.Handler()

	w := do(t, h, "OPTIONS", "/api/v1/arweave/user/profile", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSignupNotRouted(t *testing.T) {
	srv, _ := newTestServer(nil, nil)
	w := do(t, srv.Handler(), "POST", "/api/v1/arweave/user/signup", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	srv, _ := newTestServer(nil, m)
	srv.WithGatherer(reg)
	h := srv.Handler()

	do(t, h, "POST", "/api/v1/arweave/user/profile", `{"username":"alice"}`)
	do(t, h, "GET", "/api/v1/arweave/feed?category=AI", "")

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `profile_echoes_total{status="success"} 1`)
	assert.Contains(t, body, `feed_queries_total{mode="category"} 1`)
	assert.Contains(t, body, `http_requests_total`)

	srvNoMetrics, _ := newTestServer(nil, nil)
	w = do(t, srvNoMetrics.Handler(), "GET", "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type mockReceipts struct {
	receipts   []*db.Receipt
	err        error
	lastParams db.ListReceiptsByWalletParams
}

func (m *mockReceipts) ListReceiptsByWallet(ctx context.Context, params db.ListReceiptsByWalletParams) ([]*db.Receipt, error) {
	m.lastParams = params
	return m.receipts, m.err
}

func TestListReceipts(t *testing.T) {
	receipts := &mockReceipts{receipts: []*db.Receipt{
		{TxID: "tx-1", WalletAddress: testAddress, Kind: db.KindContent, Title: "Hello", DataSize: 512, NodeStatus: 200},
	}}
	srv, _ := newTestServer(nil, nil)
	h := srv.WithReceipts(receipts).Handler()

	w := do(t, h, "GET", "/api/v1/arweave/wallet/"+testAddress+"/receipts?kind=content&limit=5&offset=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Receipts []db.Receipt `json:"receipts"`
		Count    int          `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "tx-1", resp.Receipts[0].TxID)
	assert.Equal(t, db.ListReceiptsByWalletParams{
		WalletAddress: testAddress,
		Kind:          db.KindContent,
		Limit:         5,
		Offset:        2,
	}, receipts.lastParams)
}

func TestListReceipts_Errors(t *testing.T) {
	receipts := &mockReceipts{}
	srv, _ := newTestServer(nil, nil)
	h := srv.WithReceipts(receipts).Handler()

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"bad address", "/api/v1/arweave/wallet/short/receipts", http.StatusBadRequest},
		{"bad kind", "/api/v1/arweave/wallet/" + testAddress + "/receipts?kind=payment", http.StatusBadRequest},
		{"zero limit", "/api/v1/arweave/wallet/" + testAddress + "/receipts?limit=0", http.StatusBadRequest},
		{"limit too large", "/api/v1/arweave/wallet/" + testAddress + "/receipts?limit=500", http.StatusBadRequest},
		{"offset past int32", "/api/v1/arweave/wallet/" + testAddress + "/receipts?offset=2147483648", http.StatusBadRequest},
		{"offset wraps to zero", "/api/v1/arweave/wallet/" + testAddress + "/receipts?offset=4294967296", http.StatusBadRequest},
		{"negative offset", "/api/v1/arweave/wallet/" + testAddress + "/receipts?offset=-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "GET", tt.target, "")
			assert.Equal(t, tt.status, w.Code)
		})
	}

	receipts.err = errors.New("connection refused")
	w := do(t, h, "GET", "/api/v1/arweave/wallet/"+testAddress+"/receipts", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to list receipts")
}

func TestListReceipts_NotRoutedWithoutJournal(t *testing.T) {
	srv, _ := newTestServer(nil, nil)
	w := do(t, srv.Handler(), "GET", "/api/v1/arweave/wallet/"+testAddress+"/receipts", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
