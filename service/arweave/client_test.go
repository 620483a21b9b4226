package arweave

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/brojonat/curioweave/service/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNodeClient implements NodeClient for testing.
// It's behavior-focused: we set what it should return, not verify call sequences.
type mockNodeClient struct {
	balances   []string // successive Balance results; the last one repeats
	balanceErr error
	mintErr    error
	anchor     string
	price      string
	postStatus int
	postErr    error
	raw        []RawTransaction
	queryErr   error

	balanceCalls int
	mints        []string
	posted       *Transaction
	queryLimit   int
}

func (m *mockNodeClient) Balance(ctx context.Context, address string) (string, error) {
	if m.balanceErr != nil {
		return "", m.balanceErr
	}
	i := min(m.balanceCalls, len(m.balances)-1)
	m.balanceCalls++
	return m.balances[i], nil
}

func (m *mockNodeClient) Mint(ctx context.Context, address, winston string) error {
	m.mints = append(m.mints, address+"/"+winston)
	return m.mintErr
}

func (m *mockNodeClient) TxAnchor(ctx context.Context) (string, error) {
	return m.anchor, nil
}

func (m *mockNodeClient) Price(ctx context.Context, size int) (string, error) {
	return m.price, nil
}

func (m *mockNodeClient) PostTransaction(ctx context.Context, tx *Transaction) (int, error) {
	m.posted = tx
	return m.postStatus, m.postErr
}

func (m *mockNodeClient) QueryTransactions(ctx context.Context, limit int) ([]RawTransaction, error) {
	m.queryLimit = limit
	return m.raw, m.queryErr
}

func newTestClient(node *mockNodeClient) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewClient(node, ClientConfig{AppName: "CurioWeave", MintAmount: "5000", Endpoint: "test"}, m, logger)
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	c := newTestClient(&mockNodeClient{balances: []string{"2500000000000"}})
	assert.Equal(t, "2.5", c.GetBalance(ctx, "addr"))

	c = newTestClient(&mockNodeClient{balanceErr: errors.New("connection refused")})
	assert.Equal(t, "0", c.GetBalance(ctx, "addr"), "failure reports zero")
}

func TestMint(t *testing.T) {
	ctx := context.Background()

	node := &mockNodeClient{}
	c := newTestClient(node)
	assert.True(t, c.Mint(ctx, "addr", "100"))
	assert.Equal(t, []string{"addr/100"}, node.mints)

	node = &mockNodeClient{mintErr: errors.New("404")}
	c = newTestClient(node)
	assert.False(t, c.Mint(ctx, "addr", "100"))
}

func TestCreateAndPost_Success(t *testing.T) {
	ctx := context.Background()
	key := testKey(t)

	node := &mockNodeClient{
		balances:   []string{"1000000000000"},
		anchor:     "anchor-123",
		price:      "777",
		postStatus: 200,
	}
	c := newTestClient(node)

	data := []byte(`{"username":"alice"}`)
	resp, err := c.CreateAndPost(ctx, data, []Tag{{Name: "username", Value: "alice"}}, key)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 200, resp.Status)
	require.NotNil(t, node.posted)
	assert.Equal(t, node.posted.ID, resp.ID)
	assert.Equal(t, "anchor-123", node.posted.LastTx)
	assert.Equal(t, "777", node.posted.Reward)
	assert.Empty(t, node.mints, "funded wallet is not minted")

	assert.Equal(t, []Tag{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "App-Name", Value: "CurioWeave"},
		{Name: "username", Value: "alice"},
	}, node.posted.DecodedTags())
	assert.NoError(t, node.posted.Verify())
}

func TestCreateAndPost_AcceptedStatus(t *testing.T) {
	node := &mockNodeClient{balances: []string{"1"}, anchor: "a", price: "1", postStatus: 202}
	resp, err := newTestClient(node).CreateAndPost(context.Background(), []byte("x"), nil, testKey(t))
	require.NoError(t, err)
	assert.Equal(t, 202, resp.Status)
}

func TestCreateAndPost_MintsEmptyWalletOnce(t *testing.T) {
	key := testKey(t)
	address, err := key.Address()
	require.NoError(t, err)

	node := &mockNodeClient{
		balances:   []string{"0", "5000"},
		anchor:     "a",
		price:      "1",
		postStatus: 200,
	}
	_, err = newTestClient(node).CreateAndPost(context.Background(), []byte("x"), nil, key)
	require.NoError(t, err)

	assert.Equal(t, []string{address + "/5000"}, node.mints)
	assert.Equal(t, 2, node.balanceCalls)
}

func TestCreateAndPost_NoFunds(t *testing.T) {
	node := &mockNodeClient{balances: []string{"0"}}
	resp, err := newTestClient(node).CreateAndPost(context.Background(), []byte("x"), nil, testKey(t))

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNoFunds)
	assert.Len(t, node.mints, 1, "exactly one mint attempt")
	assert.Nil(t, node.posted)
}

func TestCreateAndPost_Rejected(t *testing.T) {
	node := &mockNodeClient{balances: []string{"1"}, anchor: "a", price: "1", postStatus: 400}
	resp, err := newTestClient(node).CreateAndPost(context.Background(), []byte("x"), nil, testKey(t))

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestCreateAndPost_TransportError(t *testing.T) {
	node := &mockNodeClient{balances: []string{"1"}, anchor: "a", price: "1", postErr: errors.New("reset")}
	_, err := newTestClient(node).CreateAndPost(context.Background(), []byte("x"), nil, testKey(t))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "failed to post transaction")
}

func TestQueryTransactions(t *testing.T) {
	ctx := context.Background()

	node := &mockNodeClient{raw: []RawTransaction{
		rawTx("mine", viewer, stranger, "1", confirmed(10)),
		rawTx("theirs", stranger, "someone", "1", confirmed(10)),
	}}
	c := newTestClient(node)

	out := c.QueryTransactions(ctx, viewer, 0)
	assert.Equal(t, defaultQueryLimit, node.queryLimit)
	require.Len(t, out, 1)
	assert.Equal(t, TxSent, out[0].Type)

	c.QueryTransactions(ctx, viewer, 25)
	assert.Equal(t, 25, node.queryLimit)
}

func TestQueryTransactions_FailureIsEmpty(t *testing.T) {
	c := newTestClient(&mockNodeClient{queryErr: errors.New("graphql down")})
	out := c.QueryTransactions(context.Background(), viewer, 10)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNewClient_NilMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(&mockNodeClient{balances: []string{"0"}}, ClientConfig{AppName: "CurioWeave"}, nil, logger)

	assert.Equal(t, "CurioWeave", c.AppName())
	assert.Equal(t, defaultMint, c.mintAmount)
	assert.NotPanics(t, func() {
		c.GetBalance(context.Background(), "addr")
	})
}
