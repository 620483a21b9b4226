// Package session holds the state of one connected wallet: whether it is
// connected, its key, address and selected interests.
package session

import (
	"slices"
	"sync"

	"github.com/brojonat/curioweave/service/arweave"
)

// Session is the explicit, per-user replacement for app-wide state.
// It is safe for concurrent use and is never sent to the backend.
type Session struct {
	mu        sync.RWMutex
	connected bool
	key       *arweave.JWK
	address   string
	interests []string
}

// New returns a disconnected session.
func New() *Session {
	return &Session{}
}

// Connect marks the session connected with the given key and address.
func (s *Session) Connect(key *arweave.JWK, address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	s.key = key
	s.address = address
}

// SetAddress replaces the active wallet address.
func (s *Session) SetAddress(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = address
}

// SetKey replaces the wallet key used for signing.
func (s *Session) SetKey(key *arweave.JWK) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

// SetInterests stores a copy of the selected interest ids.
func (s *Session) SetInterests(interests []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interests = slices.Clone(interests)
}

// Disconnect clears everything.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.key = nil
	s.address = ""
	s.interests = nil
}

func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *Session) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

func (s *Session) Key() *arweave.JWK {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

func (s *Session) Interests() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.interests)
}
