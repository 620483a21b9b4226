// Package submission implements the profile and content submission flows:
// local validation, posting a signed ledger transaction, and (for
// profiles) the backend echo.
package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/brojonat/curioweave/client"
	"github.com/brojonat/curioweave/service/arweave"
	"github.com/brojonat/curioweave/service/db"
	"github.com/brojonat/curioweave/service/feed"
	"github.com/brojonat/curioweave/service/metrics"
	"github.com/brojonat/curioweave/service/session"
	"github.com/google/uuid"
)

var (
	// ErrUploadFailed is returned when a content transaction could not be posted.
	ErrUploadFailed = errors.New("failed to upload content, please try again")

	// ErrProfileFailed is returned when the backend rejects a profile.
	ErrProfileFailed = errors.New("failed to create profile, please try again")
)

// Tag names carried by content transactions.
const (
	TagContentKind = "Content-Kind"
	TagCategory    = "Category"
)

// Poster signs and posts a data transaction.
type Poster interface {
	CreateAndPost(ctx context.Context, data []byte, tags []arweave.Tag, key *arweave.JWK) (*arweave.PostResponse, error)
}

// Echoer sends a profile to the backend.
type Echoer interface {
	CreateProfile(ctx context.Context, profile client.Profile) (*client.ProfileResponse, error)
}

// Recorder journals posted transactions.
type Recorder interface {
	CreateReceipt(ctx context.Context, params db.CreateReceiptParams) (*db.Receipt, error)
}

// ProfileResult reports both halves of a profile submission.
type ProfileResult struct {
	Profile client.Profile
	// TxID is the ledger transaction id; empty when LedgerErr is set.
	TxID      string
	LedgerErr error
	Echo      *client.ProfileResponse
}

// ContentResult is a successfully posted content item.
type ContentResult struct {
	Item feed.Item
	TxID string
}

// Submitter runs the submission flows for a session.
type Submitter struct {
	poster   Poster
	echoer   Echoer
	recorder Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Submitter. The recorder and metrics are optional.
func New(poster Poster, echoer Echoer, recorder Recorder, m *metrics.Metrics, logger *slog.Logger) *Submitter {
	return &Submitter{
		poster:   poster,
		echoer:   echoer,
		recorder: recorder,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitProfile validates form, stores its interests in the session, then
// posts the profile to the ledger and to the backend echo concurrently.
// The ledger and the echo do not coordinate: a ledger failure is logged and
// reported in the result, while the echo outcome decides the returned error.
func (s *Submitter) SubmitProfile(ctx context.Context, sess *session.Session, form ProfileForm) (*ProfileResult, error) {
	if err := form.Validate(); err != nil {
		s.record("profile", "invalid")
		return nil, err
	}
	key, address, err := connected(sess)
	if err != nil {
		s.record("profile", "invalid")
		return nil, err
	}

	sess.SetInterests(form.Interests)

	profile := client.Profile{
		WalletAddress: address,
		FullName:      form.FullName,
		Username:      form.Username,
		Interests:     append([]string(nil), form.Interests...),
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	tags := []arweave.Tag{
		{Name: "username", Value: profile.Username},
		{Name: "fullName", Value: profile.FullName},
		{Name: "interests", Value: strings.Join(profile.Interests, ",")},
	}

	result := &ProfileResult{Profile: profile}
	var echoErr error

	var wg sync.WaitGroup
	wg.Go(func() {
		resp, err := s.poster.CreateAndPost(ctx, data, tags, key)
		if err != nil {
			s.logger.WarnContext(ctx, "profile transaction failed", "address", address, "error", err)
			result.LedgerErr = err
			return
		}
		result.TxID = resp.ID
		s.journal(ctx, db.CreateReceiptParams{
			TxID:          resp.ID,
			WalletAddress: address,
			Kind:          db.KindProfile,
			Title:         profile.Username,
			DataSize:      int64(len(data)),
			NodeStatus:    resp.Status,
		})
	})
	wg.Go(func() {
		result.Echo, echoErr = s.echoer.CreateProfile(ctx, profile)
	})
	wg.Wait()

	if echoErr != nil {
		s.logger.ErrorContext(ctx, "error in profile submission", "address", address, "error", echoErr)
		s.record("profile", "failed")
		return result, fmt.Errorf("%w: %w", ErrProfileFailed, echoErr)
	}

	s.record("profile", "success")
	s.logger.InfoContext(ctx, "profile created",
		"address", address,
		"username", profile.Username,
		"tx_id", result.TxID,
	)
	return result, nil
}

// SubmitContent validates form, builds a feed item authored by the session's
// wallet, and posts it as a transaction tagged with its kind and category.
func (s *Submitter) SubmitContent(ctx context.Context, sess *session.Session, form ContentForm) (*ContentResult, error) {
	key, address, err := connected(sess)
	if err != nil {
		s.record("content", "invalid")
		return nil, err
	}
	if err := form.Validate(); err != nil {
		s.record("content", "invalid")
		return nil, err
	}

	kind := form.contentType()
	item := feed.Item{
		ID:            uuid.NewString(),
		Title:         form.Title,
		Excerpt:       form.Excerpt,
		Author:        address,
		AuthorAddress: address,
		Category:      form.Category,
		Timestamp:     s.now().UTC().Format(time.RFC3339),
		Tags:          append([]string(nil), form.Tags...),
		IsVideo:       kind == ContentVideo,
	}
	switch kind {
	case ContentText:
		item.TextContent = form.TextContent
	case ContentImage:
		item.ImageURL = form.MediaURL
	case ContentVideo:
		item.VideoURL = form.MediaURL
	}

	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content: %w", err)
	}
	tags := []arweave.Tag{
		{Name: TagContentKind, Value: string(kind)},
		{Name: TagCategory, Value: item.Category},
	}

	resp, err := s.poster.CreateAndPost(ctx, data, tags, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "error uploading content", "address", address, "error", err)
		s.record("content", "failed")
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	s.journal(ctx, db.CreateReceiptParams{
		TxID:          resp.ID,
		WalletAddress: address,
		Kind:          db.KindContent,
		Title:         item.Title,
		DataSize:      int64(len(data)),
		NodeStatus:    resp.Status,
	})

	s.record("content", "success")
	s.logger.InfoContext(ctx, "content uploaded",
		"address", address,
		"item_id", item.ID,
		"tx_id", resp.ID,
	)
	return &ContentResult{Item: item, TxID: resp.ID}, nil
}

func connected(sess *session.Session) (*arweave.JWK, string, error) {
	key, address := sess.Key(), sess.Address()
	if !sess.Connected() || key == nil || address == "" {
		return nil, "", invalid("wallet", "please connect your wallet first")
	}
	return key, address, nil
}

// journal records a receipt when a recorder is configured. Failures are
// logged; the transaction is already on the ledger.
func (s *Submitter) journal(ctx context.Context, params db.CreateReceiptParams) {
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.CreateReceipt(ctx, params); err != nil {
		s.logger.WarnContext(ctx, "failed to record receipt", "tx_id", params.TxID, "error", err)
	}
}

func (s *Submitter) record(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSubmission(kind, outcome)
	}
}
