package submission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/brojonat/curioweave/client"
	"github.com/brojonat/curioweave/service/arweave"
	"github.com/brojonat/curioweave/service/db"
	"github.com/brojonat/curioweave/service/feed"
	"github.com/brojonat/curioweave/service/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postCall struct {
	data []byte
	tags []arweave.Tag
	key  *arweave.JWK
}

type mockPoster struct {
	mu    sync.Mutex
	calls []postCall
	err   error
}

func (m *mockPoster) CreateAndPost(ctx context.Context, data []byte, tags []arweave.Tag, key *arweave.JWK) (*arweave.PostResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, postCall{data: data, tags: tags, key: key})
	if m.err != nil {
		return nil, m.err
	}
	return &arweave.PostResponse{Status: 200, ID: "tx-1"}, nil
}

type mockEchoer struct {
	mu       sync.Mutex
	profiles []client.Profile
	err      error
}

func (m *mockEchoer) CreateProfile(ctx context.Context, profile client.Profile) (*client.ProfileResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = append(m.profiles, profile)
	if m.err != nil {
		return nil, m.err
	}
	return &client.ProfileResponse{Success: true, Message: "Profile created successfully", Data: &profile}, nil
}

type mockRecorder struct {
	mu       sync.Mutex
	receipts []db.CreateReceiptParams
	err      error
}

func (m *mockRecorder) CreateReceipt(ctx context.Context, params db.CreateReceiptParams) (*db.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.receipts = append(m.receipts, params)
	return &db.Receipt{TxID: params.TxID}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func connectedSession() *session.Session {
	s := session.New()
	s.Connect(&arweave.JWK{Kty: "RSA", N: "n", E: "AQAB", D: "d"}, "addr-1")
	return s
}

func validProfile() ProfileForm {
	return ProfileForm{FullName: "Alice Liddell", Username: "alice", Interests: []string{"ai", "web3"}}
}

func validContent() ContentForm {
	return ContentForm{
		Title:       "Hello",
		Excerpt:     "A first post",
		Category:    "defi",
		Tags:        []string{"DeFi", "Web3"},
		ContentType: ContentText,
		TextContent: "body",
	}
}

func TestProfileForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    ProfileForm
		field   string
		message string
	}{
		{"blank full name", ProfileForm{FullName: "  ", Username: "a", Interests: []string{"ai"}}, "fullName", "please enter your full name"},
		{"empty username", ProfileForm{FullName: "A", Username: "", Interests: []string{"ai"}}, "username", "please enter a username"},
		{"blank username", ProfileForm{FullName: "A", Username: " \t", Interests: []string{"ai"}}, "username", "please enter a username"},
		{"no interests", ProfileForm{FullName: "A", Username: "a"}, "interests", "please select at least one interest"},
		{"unknown interest", ProfileForm{FullName: "A", Username: "a", Interests: []string{"ai", "gardening"}}, "interests", `unknown interest "gardening"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}

	assert.NoError(t, validProfile().Validate())
}

func TestContentForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContentForm)
		message string
	}{
		{"missing title", func(f *ContentForm) { f.Title = "" }, "please fill in all required fields"},
		{"missing excerpt", func(f *ContentForm) { f.Excerpt = "" }, "please fill in all required fields"},
		{"missing category", func(f *ContentForm) { f.Category = "" }, "please fill in all required fields"},
		{"no tags", func(f *ContentForm) { f.Tags = nil }, "please fill in all required fields"},
		{"text without body", func(f *ContentForm) { f.TextContent = "" }, "please enter some text content"},
		{"default type is text", func(f *ContentForm) { f.ContentType = ""; f.TextContent = "" }, "please enter some text content"},
		{"image without url", func(f *ContentForm) { f.ContentType = ContentImage }, "please provide a URL for the image"},
		{"video without url", func(f *ContentForm) { f.ContentType = ContentVideo }, "please provide a URL for the video"},
		{"unknown type", func(f *ContentForm) { f.ContentType = "audio" }, `unsupported content type "audio"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validContent()
			tt.mutate(&form)
			err := form.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}

	assert.NoError(t, validContent().Validate())

	video := validContent()
	video.ContentType = ContentVideo
	video.MediaURL = "https://example.com/v.mp4"
	assert.NoError(t, video.Validate())
}

func TestSubmitProfile_Success(t *testing.T) {
	poster := &mockPoster{}
	echoer := &mockEchoer{}
	recorder := &mockRecorder{}
	s := New(poster, echoer, recorder, nil, testLogger())
	sess := connectedSession()

	result, err := s.SubmitProfile(context.Background(), sess, validProfile())
	require.NoError(t, err)

	assert.Equal(t, "tx-1", result.TxID)
	assert.NoError(t, result.LedgerErr)
	require.NotNil(t, result.Echo)
	assert.True(t, result.Echo.Success)
	assert.Equal(t, []string{"ai", "web3"}, sess.Interests())

	require.Len(t, poster.calls, 1)
	call := poster.calls[0]
	assert.Equal(t, []arweave.Tag{
		{Name: "username", Value: "alice"},
		{Name: "fullName", Value: "Alice Liddell"},
		{Name: "interests", Value: "ai,web3"},
	}, call.tags)

	var posted client.Profile
	require.NoError(t, json.Unmarshal(call.data, &posted))
	assert.Equal(t, "addr-1", posted.WalletAddress)
	assert.Equal(t, result.Profile, posted)

	require.Len(t, echoer.profiles, 1)
	assert.Equal(t, posted, echoer.profiles[0])

	require.Len(t, recorder.receipts, 1)
	assert.Equal(t, db.KindProfile, recorder.receipts[0].Kind)
	assert.Equal(t, "alice", recorder.receipts[0].Title)
}

func TestSubmitProfile_InvalidMakesNoCalls(t *testing.T) {
	poster := &mockPoster{}
	echoer := &mockEchoer{}
	s := New(poster, echoer, nil, nil, testLogger())
	sess := connectedSession()

	form := validProfile()
	form.Username = ""
	_, err := s.SubmitProfile(context.Background(), sess, form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
	assert.Empty(t, poster.calls)
	assert.Empty(t, echoer.profiles)
	assert.Empty(t, sess.Interests())
}

func TestSubmitProfile_NotConnected(t *testing.T) {
	poster := &mockPoster{}
	s := New(poster, &mockEchoer{}, nil, nil, testLogger())

	_, err := s.SubmitProfile(context.Background(), session.New(), validProfile())
	require.Error(t, err)
	assert.Equal(t, "please connect your wallet first", err.Error())
	assert.Empty(t, poster.calls)
}

func TestSubmitProfile_LedgerFailureDoesNotFailEcho(t *testing.T) {
	poster := &mockPoster{err: arweave.ErrNoFunds}
	recorder := &mockRecorder{}
	s := New(poster, &mockEchoer{}, recorder, nil, testLogger())

	result, err := s.SubmitProfile(context.Background(), connectedSession(), validProfile())
	require.NoError(t, err)
	assert.Empty(t, result.TxID)
	assert.ErrorIs(t, result.LedgerErr, arweave.ErrNoFunds)
	assert.True(t, result.Echo.Success)
	assert.Empty(t, recorder.receipts)
}

func TestSubmitProfile_EchoFailure(t *testing.T) {
	poster := &mockPoster{}
	s := New(poster, &mockEchoer{err: errors.New("request failed: Error creating profile")}, nil, nil, testLogger())

	result, err := s.SubmitProfile(context.Background(), connectedSession(), validProfile())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileFailed)
	require.NotNil(t, result)
	assert.Equal(t, "tx-1", result.TxID)
	assert.Len(t, poster.calls, 1)
}

func TestSubmitContent_Success(t *testing.T) {
	poster := &mockPoster{}
	recorder := &mockRecorder{}
	s := New(poster, nil, recorder, nil, testLogger())
	s.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600)) }

	form := validContent()
	form.ContentType = ContentImage
	form.MediaURL = "https://example.com/a.png"
	form.TextContent = ""

	result, err := s.SubmitContent(context.Background(), connectedSession(), form)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", result.TxID)

	item := result.Item
	_, err = uuid.Parse(item.ID)
	assert.NoError(t, err)
	assert.Equal(t, "addr-1", item.Author)
	assert.Equal(t, "addr-1", item.AuthorAddress)
	assert.Equal(t, "2025-03-01T11:00:00Z", item.Timestamp)
	assert.Equal(t, "https://example.com/a.png", item.ImageURL)
	assert.Empty(t, item.VideoURL)
	assert.False(t, item.IsVideo)
	assert.Zero(t, item.Likes)
	assert.Zero(t, item.Comments)

	require.Len(t, poster.calls, 1)
	assert.Equal(t, []arweave.Tag{
		{Name: TagContentKind, Value: "image"},
		{Name: TagCategory, Value: "defi"},
	}, poster.calls[0].tags)

	var posted feed.Item
	require.NoError(t, json.Unmarshal(poster.calls[0].data, &posted))
	assert.Equal(t, item, posted)

	require.Len(t, recorder.receipts, 1)
	assert.Equal(t, db.KindContent, recorder.receipts[0].Kind)
	assert.Equal(t, "Hello", recorder.receipts[0].Title)
}

func TestSubmitContent_Text(t *testing.T) {
	s := New(&mockPoster{}, nil, nil, nil, testLogger())

	result, err := s.SubmitContent(context.Background(), connectedSession(), validContent())
	require.NoError(t, err)
	assert.Equal(t, "body", result.Item.TextContent)
	assert.Empty(t, result.Item.ImageURL)
}

func TestSubmitContent_Failures(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		poster := &mockPoster{}
		s := New(poster, nil, nil, nil, testLogger())
		_, err := s.SubmitContent(context.Background(), session.New(), validContent())
		require.Error(t, err)
		assert.Equal(t, "please connect your wallet first", err.Error())
		assert.Empty(t, poster.calls)
	})

	t.Run("invalid form", func(t *testing.T) {
		poster := &mockPoster{}
		s := New(poster, nil, nil, nil, testLogger())
		form := validContent()
		form.Tags = nil
		_, err := s.SubmitContent(context.Background(), connectedSession(), form)
		require.Error(t, err)
		assert.Empty(t, poster.calls)
	})

	t.Run("ledger rejects", func(t *testing.T) {
		s := New(&mockPoster{err: arweave.ErrRejected}, nil, nil, nil, testLogger())
		_, err := s.SubmitContent(context.Background(), connectedSession(), validContent())
		assert.ErrorIs(t, err, ErrUploadFailed)
		assert.ErrorIs(t, err, arweave.ErrRejected)
	})

	t.Run("receipt failure is not fatal", func(t *testing.T) {
		s := New(&mockPoster{}, nil, &mockRecorder{err: errors.New("db down")}, nil, testLogger())
		result, err := s.SubmitContent(context.Background(), connectedSession(), validContent())
		require.NoError(t, err)
		assert.Equal(t, "tx-1", result.TxID)
	})
}
