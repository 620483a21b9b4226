package arweave

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"strconv"
)

// NewTransaction builds an unsigned format 2 data transaction owned by key.
// anchor and reward come from the node (tx_anchor and price endpoints).
func NewTransaction(data []byte, key *JWK, anchor, reward string) (*Transaction, error) {
	if key == nil || key.N == "" {
		return nil, fmt.Errorf("key has no modulus")
	}

	tx := &Transaction{
		Format:   2,
		LastTx:   anchor,
		Owner:    key.Owner(),
		Tags:     []Tag{},
		Quantity: "0",
		Reward:   reward,
		DataSize: strconv.Itoa(len(data)),
		data:     data,
	}
	if len(data) > 0 {
		tx.Data = b64.EncodeToString(data)
		tx.DataRoot = b64.EncodeToString(dataRoot(data))
	}
	return tx, nil
}

// AddTag appends a tag, encoding name and value for the wire.
func (tx *Transaction) AddTag(name, value string) {
	tx.Tags = append(tx.Tags, Tag{
		Name:  b64.EncodeToString([]byte(name)),
		Value: b64.EncodeToString([]byte(value)),
	})
}

// DecodedTags returns the tags as plain strings. Tags that fail to decode
// are returned unchanged.
func (tx *Transaction) DecodedTags() []Tag {
	out := make([]Tag, 0, len(tx.Tags))
	for _, t := range tx.Tags {
		name, err := b64.DecodeString(t.Name)
		if err != nil {
			out = append(out, t)
			continue
		}
		value, err := b64.DecodeString(t.Value)
		if err != nil {
			out = append(out, t)
			continue
		}
		out = append(out, Tag{Name: string(name), Value: string(value)})
	}
	return out
}

// signatureData is the deep hash of the fields a format 2 signature covers.
func (tx *Transaction) signatureData() ([]byte, error) {
	fields := []string{tx.Owner, tx.Target, tx.LastTx, tx.DataRoot}
	decoded := make([][]byte, len(fields))
	for i, f := range fields {
		raw, err := b64.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction field encoding: %w", err)
		}
		decoded[i] = raw
	}
	owner, target, lastTx, root := decoded[0], decoded[1], decoded[2], decoded[3]

	tags := make([]any, 0, len(tx.Tags))
	for _, t := range tx.Tags {
		name, err := b64.DecodeString(t.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid tag name encoding: %w", err)
		}
		value, err := b64.DecodeString(t.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid tag value encoding: %w", err)
		}
		tags = append(tags, []any{name, value})
	}

	return deepHash([]any{
		[]byte(strconv.Itoa(tx.Format)),
		owner,
		target,
		[]byte(tx.Quantity),
		[]byte(tx.Reward),
		lastTx,
		tags,
		[]byte(tx.DataSize),
		root,
	}), nil
}

// Sign signs the transaction with RSA-PSS/SHA-256 and sets its id.
func (tx *Transaction) Sign(key *JWK) error {
	priv, err := key.PrivateKey()
	if err != nil {
		return err
	}
	if tx.Owner != key.Owner() {
		return fmt.Errorf("key does not own transaction")
	}

	msg, err := tx.signatureData()
	if err != nil {
		return err
	}
	digest := sha256.Sum256(msg)
	sig, err := rsa.SignPSS(rand.Reader, priv, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	id := sha256.Sum256(sig)
	tx.Signature = b64.EncodeToString(sig)
	tx.ID = b64.EncodeToString(id[:])
	return nil
}

// Verify checks the signature against the owner and that the id matches it.
func (tx *Transaction) Verify() error {
	sig, err := b64.DecodeString(tx.Signature)
	if err != nil || len(sig) == 0 {
		return fmt.Errorf("transaction has no valid signature")
	}
	id := sha256.Sum256(sig)
	if b64.EncodeToString(id[:]) != tx.ID {
		return fmt.Errorf("transaction id does not match signature")
	}

	pub, err := (&JWK{N: tx.Owner, E: b64.EncodeToString([]byte{0x01, 0x00, 0x01})}).PublicKey()
	if err != nil {
		return err
	}
	msg, err := tx.signatureData()
	if err != nil {
		return err
	}
	digest := sha256.Sum256(msg)
	if err := rsa.VerifyPSS(pub, crypto.SHA256, digest[:], sig, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
	}); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}
