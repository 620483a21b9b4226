package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brojonat/curioweave/service/arweave"
	"github.com/brojonat/curioweave/service/feed"
)

// DefaultTimeout bounds every request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// Profile is the profile payload the backend echoes back.
type Profile struct {
	WalletAddress string   `json:"walletAddress"`
	FullName      string   `json:"fullName"`
	Username      string   `json:"username"`
	Interests     []string `json:"interests"`
}

// ProfileResponse is the backend's answer to a profile submission.
type ProfileResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *Profile `json:"data,omitempty"`
}

// FeedQuery selects a page of the sample feed.
type FeedQuery struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// Balance is a wallet balance in AR.
type Balance struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// Client is the HTTP client for the CurioWeave backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new backend API client.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// CreateProfile posts a profile to the backend, which echoes it back.
func (c *Client) CreateProfile(ctx context.Context, profile Profile) (*ProfileResponse, error) {
	body, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/arweave/user/profile", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.parseErrorResponse(resp)
	}

	var out ProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// Feed retrieves one page of the sample feed.
func (c *Client) Feed(ctx context.Context, q FeedQuery) (*feed.Result, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	var out feed.Result
	if err := c.getJSON(ctx, "/api/v1/arweave/feed", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FeedItem retrieves one feed item by id.
func (c *Client) FeedItem(ctx context.Context, id string) (*feed.Item, error) {
	var out feed.Item
	if err := c.getJSON(ctx, "/api/v1/arweave/feed/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories returns the category labels for a set of interest ids,
// always starting with "All".
func (c *Client) Categories(ctx context.Context, interests []string) ([]string, error) {
	params := url.Values{}
	if len(interests) > 0 {
		params.Set("interests", strings.Join(interests, ","))
	}

	var out struct {
		Categories []string `json:"categories"`
	}
	if err := c.getJSON(ctx, "/api/v1/arweave/categories", params, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Balance returns the AR balance of address as reported by the backend.
func (c *Client) Balance(ctx context.Context, address string) (*Balance, error) {
	var out Balance
	path := fmt.Sprintf("/api/v1/arweave/wallet/%s/balance", url.PathEscape(address))
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transactions returns the classified transactions of address.
func (c *Client) Transactions(ctx context.Context, address string, limit int) ([]arweave.ProcessedTransaction, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Transactions []arweave.ProcessedTransaction `json:"transactions"`
	}
	path := fmt.Sprintf("/api/v1/arweave/wallet/%s/transactions", url.PathEscape(address))
	if err := c.getJSON(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// Health checks that the backend is up.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseErrorResponse(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// do sends req and logs the exchange.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.logger.Debug("api request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("network error, please check your connection", "url", req.URL.String(), "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.logResponse(resp)
	return resp, nil
}

func (c *Client) logResponse(resp *http.Response) {
	path := resp.Request.URL.Path
	switch code := resp.StatusCode; {
	case code < 400:
		c.logger.Debug("api response", "status", code, "path", path)
	case code == http.StatusBadRequest:
		c.logger.Warn("bad request", "path", path)
	case code == http.StatusUnauthorized:
		c.logger.Warn("unauthorized access", "path", path)
	case code == http.StatusForbidden:
		c.logger.Warn("forbidden access", "path", path)
	case code == http.StatusNotFound:
		c.logger.Warn("resource not found", "path", path)
	case code >= 500:
		c.logger.Error("server error", "status", code, "path", path)
	default:
		c.logger.Warn("unexpected status", "status", code, "path", path)
	}
}

// parseErrorResponse attempts to parse an error response from the server.
// The echo endpoint reports "message"; the rest of the API reports "error".
func (c *Client) parseErrorResponse(resp *http.Response) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	switch {
	case errResp.Message != "":
		return fmt.Errorf("request failed: %s", errResp.Message)
	case errResp.Error != "":
		return fmt.Errorf("request failed: %s", errResp.Error)
	default:
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
}
