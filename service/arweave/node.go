package arweave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// NodeClient is the subset of the ledger node's HTTP API we need.
// This allows us to fake the node in tests without running one.
type NodeClient interface {
	// Balance returns the wallet balance in winston.
	Balance(ctx context.Context, address string) (string, error)

	// Mint credits test funds. Only test nodes implement it.
	Mint(ctx context.Context, address, winston string) error

	// TxAnchor returns a recent anchor for last_tx.
	TxAnchor(ctx context.Context) (string, error)

	// Price returns the reward in winston for storing size bytes.
	Price(ctx context.Context, size int) (string, error)

	// PostTransaction submits a signed transaction and returns the HTTP status.
	PostTransaction(ctx context.Context, tx *Transaction) (int, error)

	// QueryTransactions runs the GraphQL transaction query.
	QueryTransactions(ctx context.Context, limit int) ([]RawTransaction, error)
}

// httpNodeClient talks to an arweave or arlocal node over HTTP.
type httpNodeClient struct {
	baseURL    string
	graphqlURL string
	httpClient *http.Client
}

// NewNodeClient creates a NodeClient for the node at baseURL.
// If graphqlURL is empty, baseURL + "/graphql" is used.
func NewNodeClient(baseURL, graphqlURL string, timeout time.Duration) NodeClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if graphqlURL == "" {
		graphqlURL = baseURL + "/graphql"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpNodeClient{
		baseURL:    baseURL,
		graphqlURL: graphqlURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (n *httpNodeClient) Balance(ctx context.Context, address string) (string, error) {
	body, err := n.get(ctx, "/wallet/"+address+"/balance")
	if err != nil {
		return "", err
	}
	balance := strings.TrimSpace(string(body))
	if !isDigits(balance) {
		return "", fmt.Errorf("unexpected balance response %q", balance)
	}
	return balance, nil
}

func (n *httpNodeClient) Mint(ctx context.Context, address, winston string) error {
	// Any 2xx is success; arlocal versions differ on whether the body is JSON.
	_, err := n.get(ctx, "/mint/"+address+"/"+winston)
	return err
}

func (n *httpNodeClient) TxAnchor(ctx context.Context) (string, error) {
	body, err := n.get(ctx, "/tx_anchor")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (n *httpNodeClient) Price(ctx context.Context, size int) (string, error) {
	body, err := n.get(ctx, fmt.Sprintf("/price/%d", size))
	if err != nil {
		return "", err
	}
	price := strings.TrimSpace(string(body))
	if !isDigits(price) {
		return "", fmt.Errorf("unexpected price response %q", price)
	}
	return price, nil
}

func (n *httpNodeClient) PostTransaction(ctx context.Context, tx *Transaction) (int, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return 0, fmt.Errorf("failed to encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/tx", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// transactionsQuery selects the most recent transactions on the node.
// Filtering by owner is left to the classifier; arlocal's GraphQL does not
// support every filter argument.
const transactionsQuery = `{
  transactions(first: %d) {
    edges {
      node {
        id
        owner { address }
        recipient
        tags { name value }
        block { height timestamp }
        quantity { ar }
        data { size }
      }
    }
  }
}`

type graphQLResponse struct {
	Data *struct {
		Transactions *struct {
			Edges []struct {
				Node RawTransaction `json:"node"`
			} `json:"edges"`
		} `json:"transactions"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (n *httpNodeClient) QueryTransactions(ctx context.Context, limit int) ([]RawTransaction, error) {
	payload, err := json.Marshal(map[string]string{
		"query": fmt.Sprintf(transactionsQuery, limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("graphql request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", result.Errors[0].Message)
	}
	if result.Data == nil || result.Data.Transactions == nil {
		return nil, fmt.Errorf("unexpected graphql response format")
	}

	txs := make([]RawTransaction, 0, len(result.Data.Transactions.Edges))
	for _, edge := range result.Data.Transactions.Edges {
		txs = append(txs, edge.Node)
	}
	return txs, nil
}

func (n *httpNodeClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s failed with status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

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
