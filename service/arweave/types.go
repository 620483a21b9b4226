package arweave

import (
	"encoding/json"
	"errors"
)

// Sentinel errors returned by CreateAndPost. Callers that only need a
// null/not-null outcome can ignore the detail.
var (
	ErrNoFunds  = errors.New("wallet has no funds")
	ErrRejected = errors.New("transaction rejected by node")
)

// Tag is a name/value pair attached to a ledger transaction.
// Inside a Transaction both fields hold base64url-encoded bytes.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Transaction is a format 2 ledger transaction in its wire form.
// All binary fields are base64url without padding; numeric fields are
// decimal strings.
type Transaction struct {
	Format    int    `json:"format"`
	ID        string `json:"id"`
	LastTx    string `json:"last_tx"`
	Owner     string `json:"owner"`
	Tags      []Tag  `json:"tags"`
	Target    string `json:"target"`
	Quantity  string `json:"quantity"`
	Data      string `json:"data"`
	DataSize  string `json:"data_size"`
	DataRoot  string `json:"data_root"`
	Reward    string `json:"reward"`
	Signature string `json:"signature"`

	data []byte
}

// PostResponse is the node's answer to a transaction post.
type PostResponse struct {
	Status int    `json:"status"`
	ID     string `json:"id"`
}

// Wallet is a freshly generated key with its derived address.
type Wallet struct {
	Key     *JWK
	Address string
}

// Block is the confirming block of a queried transaction.
type Block struct {
	Height    int64 `json:"height"`
	Timestamp int64 `json:"timestamp"`
}

// RawTransaction is one node of the ledger's GraphQL transaction query.
// Tag names and values may or may not be base64 encoded depending on the
// gateway, so they are kept as returned.
type RawTransaction struct {
	ID    string `json:"id"`
	Owner struct {
		Address string `json:"address"`
	} `json:"owner"`
	Recipient string `json:"recipient"`
	Tags      []Tag  `json:"tags"`
	Block     *Block `json:"block"`
	Quantity  struct {
		AR string `json:"ar"`
	} `json:"quantity"`
	Data struct {
		Size flexString `json:"size"`
	} `json:"data"`
}

// TxType is the inferred kind of a processed transaction.
type TxType string

const (
	TxProfileCreation TxType = "Profile Creation"
	TxContentUpload   TxType = "Content Upload"
	TxSent            TxType = "Sent"
	TxReceived        TxType = "Received"
	TxOther           TxType = "Other"
)

// TxStatus is Pending until the transaction lands in a block.
type TxStatus string

const (
	StatusPending   TxStatus = "Pending"
	StatusCompleted TxStatus = "Completed"
)

// ProcessedTransaction is the display form produced by the Classifier.
type ProcessedTransaction struct {
	ID        string   `json:"id"`
	Type      TxType   `json:"type"`
	Amount    string   `json:"amount"`
	Recipient string   `json:"recipient"`
	Sender    string   `json:"sender"`
	Timestamp string   `json:"timestamp"`
	Status    TxStatus `json:"status"`
	Tags      []Tag    `json:"tags"`
	DataSize  string   `json:"dataSize"`
}

// flexString accepts a JSON string or number. Gateways disagree on the
// type of data.size.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string {
	if f == "" {
		return "0"
	}
	return string(f)
}
