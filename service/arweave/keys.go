package arweave

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
)

const (
	keyBits        = 4096
	publicExponent = 65537
)

var b64 = base64.RawURLEncoding

// JWK is an RSA key in JSON Web Key form, the format ledger wallets are
// saved and exchanged in. It holds private material and must never leave
// the process except through SaveKeyFile.
type JWK struct {
	Kty string `json:"kty"`
	E   string `json:"e"`
	N   string `json:"n"`
	D   string `json:"d,omitempty"`
	P   string `json:"p,omitempty"`
	Q   string `json:"q,omitempty"`
	DP  string `json:"dp,omitempty"`
	DQ  string `json:"dq,omitempty"`
	QI  string `json:"qi,omitempty"`
}

// GenerateKey creates a new 4096-bit RSA wallet key.
func GenerateKey() (*JWK, error) {
	return generateKey(rand.Reader, keyBits)
}

func generateKey(r io.Reader, bits int) (*JWK, error) {
	priv, err := rsa.GenerateKey(r, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate rsa key: %w", err)
	}
	if priv.E != publicExponent {
		return nil, fmt.Errorf("unexpected public exponent %d", priv.E)
	}
	return JWKFromRSA(priv), nil
}

// JWKFromRSA converts a precomputed RSA private key to JWK form.
func JWKFromRSA(priv *rsa.PrivateKey) *JWK {
	priv.Precompute()
	return &JWK{
		Kty: "RSA",
		E:   b64.EncodeToString(big.NewInt(int64(priv.E)).Bytes()),
		N:   b64.EncodeToString(priv.N.Bytes()),
		D:   b64.EncodeToString(priv.D.Bytes()),
		P:   b64.EncodeToString(priv.Primes[0].Bytes()),
		Q:   b64.EncodeToString(priv.Primes[1].Bytes()),
		DP:  b64.EncodeToString(priv.Precomputed.Dp.Bytes()),
		DQ:  b64.EncodeToString(priv.Precomputed.Dq.Bytes()),
		QI:  b64.EncodeToString(priv.Precomputed.Qinv.Bytes()),
	}
}

// PrivateKey decodes the JWK into an RSA private key and validates it.
func (k *JWK) PrivateKey() (*rsa.PrivateKey, error) {
	if k == nil {
		return nil, fmt.Errorf("key is nil")
	}
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}
	pub, err := k.PublicKey()
	if err != nil {
		return nil, err
	}

	fields := map[string]string{"d": k.D, "p": k.P, "q": k.Q}
	ints := make(map[string]*big.Int, len(fields))
	for name, value := range fields {
		if value == "" {
			return nil, fmt.Errorf("key is missing private component %q", name)
		}
		n, err := decodeBigInt(value)
		if err != nil {
			return nil, fmt.Errorf("invalid key component %q: %w", name, err)
		}
		ints[name] = n
	}

	priv := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         ints["d"],
		Primes:    []*big.Int{ints["p"], ints["q"]},
	}
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	priv.Precompute()
	return priv, nil
}

// PublicKey decodes the modulus and exponent.
func (k *JWK) PublicKey() (*rsa.PublicKey, error) {
	n, err := decodeBigInt(k.N)
	if err != nil {
		return nil, fmt.Errorf("invalid key modulus: %w", err)
	}
	e, err := decodeBigInt(k.E)
	if err != nil {
		return nil, fmt.Errorf("invalid key exponent: %w", err)
	}
	if !e.IsInt64() || e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("key exponent out of range")
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

// Owner returns the modulus as carried in a transaction's owner field.
func (k *JWK) Owner() string {
	return k.N
}

// Address derives the wallet address: base64url(sha256(modulus)).
func (k *JWK) Address() (string, error) {
	if k == nil || k.N == "" {
		return "", fmt.Errorf("key has no modulus")
	}
	return AddressFromOwner(k.N)
}

// AddressFromOwner derives a wallet address from a transaction owner field.
func AddressFromOwner(owner string) (string, error) {
	raw, err := b64.DecodeString(owner)
	if err != nil {
		return "", fmt.Errorf("invalid owner encoding: %w", err)
	}
	sum := sha256.Sum256(raw)
	return b64.EncodeToString(sum[:]), nil
}

// LoadKeyFile reads a JSON key file.
func LoadKeyFile(path string) (*JWK, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	var k JWK
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}
	if k.N == "" || k.D == "" {
		return nil, fmt.Errorf("key file %s does not hold a private rsa key", path)
	}
	return &k, nil
}

// SaveKeyFile writes key as JSON readable only by the owner.
func SaveKeyFile(path string, key *JWK) error {
	data, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to encode key: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

func decodeBigInt(s string) (*big.Int, error) {
	raw, err := b64.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty value")
	}
	return new(big.Int).SetBytes(raw), nil
}
