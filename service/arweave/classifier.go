package arweave

import (
	"encoding/base64"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	tagAppName     = "App-Name"
	tagContentType = "Content-Type"
	contentJSON    = "application/json"
)

// ProfileTagNames are the tag names that mark an app transaction as a
// profile creation.
var ProfileTagNames = []string{"username", "fullName", "interests"}

var (
	stdBase64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)
	urlBase64Pattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Classifier turns raw ledger query results into display transactions
// from the point of view of one wallet.
type Classifier struct {
	AppName string
}

// Classify keeps the records involving viewer, infers each one's type and
// status, drops repeated (id, type) pairs and moves pending entries first.
// Relative order is otherwise preserved.
func (c Classifier) Classify(raw []RawTransaction, viewer string) []ProcessedTransaction {
	out := make([]ProcessedTransaction, 0, len(raw))
	type key struct {
		id  string
		typ TxType
	}
	seen := make(map[key]struct{}, len(raw))

	for _, tx := range raw {
		if tx.Owner.Address != viewer && tx.Recipient != viewer {
			continue
		}
		p := c.process(tx, viewer)
		k := key{p.ID, p.Type}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b ProcessedTransaction) int {
		return statusRank(a.Status) - statusRank(b.Status)
	})
	return out
}

func statusRank(s TxStatus) int {
	if s == StatusPending {
		return 0
	}
	return 1
}

func (c Classifier) process(tx RawTransaction, viewer string) ProcessedTransaction {
	tags := make([]Tag, len(tx.Tags))
	for i, t := range tx.Tags {
		tags[i] = decodeTag(t)
	}

	amount, positive := formatAmount(tx.Quantity.AR)

	p := ProcessedTransaction{
		ID:        tx.ID,
		Type:      c.inferType(tags, tx, viewer, positive),
		Amount:    amount,
		Recipient: tx.Recipient,
		Sender:    tx.Owner.Address,
		Timestamp: string(StatusPending),
		Status:    StatusPending,
		Tags:      tags,
		DataSize:  tx.Data.Size.String(),
	}
	if p.Recipient == "" {
		p.Recipient = "N/A"
	}
	if tx.Block != nil && tx.Block.Timestamp != 0 {
		p.Status = StatusCompleted
		p.Timestamp = time.Unix(tx.Block.Timestamp, 0).UTC().Format(time.RFC3339)
	}
	return p
}

func (c Classifier) inferType(tags []Tag, tx RawTransaction, viewer string, positive bool) TxType {
	appTag, hasApp := findTag(tags, tagAppName)
	if hasApp {
		if appTag.Value != c.AppName {
			return TxOther
		}
		if ct, ok := findTag(tags, tagContentType); ok && ct.Value == contentJSON && hasProfileTag(tags) {
			return TxProfileCreation
		}
		return TxContentUpload
	}

	if positive {
		isOwner := tx.Owner.Address == viewer
		isRecipient := tx.Recipient == viewer
		switch {
		case isOwner && !isRecipient:
			return TxSent
		case isRecipient && !isOwner:
			return TxReceived
		}
	}
	return TxOther
}

func findTag(tags []Tag, name string) (Tag, bool) {
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Tag{}, false
}

func hasProfileTag(tags []Tag) bool {
	for _, t := range tags {
		if slices.Contains(ProfileTagNames, t.Name) {
			return true
		}
	}
	return false
}

// decodeTag decodes name and value together. Tags are encoded as a pair,
// so a plain tag whose value merely looks like base64 ("adam") is kept as is
// unless its name decodes too.
func decodeTag(t Tag) Tag {
	name, ok := decodeTagField(t.Name)
	if !ok {
		return t
	}
	value, ok := decodeTagField(t.Value)
	if !ok {
		return t
	}
	return Tag{Name: name, Value: value}
}

// decodeTagField decodes s when it is base64 that decodes to printable
// UTF-8. The empty string decodes to itself.
func decodeTagField(s string) (string, bool) {
	if s == "" {
		return "", true
	}
	var (
		raw []byte
		err error
	)
	switch {
	case stdBase64Pattern.MatchString(s) && len(s)%4 == 0:
		raw, err = base64.StdEncoding.Strict().DecodeString(s)
	case urlBase64Pattern.MatchString(s):
		raw, err = base64.RawURLEncoding.Strict().DecodeString(s)
	default:
		return s, false
	}
	if err != nil || !printable(raw) {
		return s, false
	}
	return string(raw), true
}

func printable(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}
