package nats

import (
	"context"
	"sync"
)

// MockPublisher keeps published profile events in memory.
type MockPublisher struct {
	mu     sync.Mutex
	events []ProfileEvent
	err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// FailWith makes every later PublishProfile return err. A nil err restores
// normal publishing.
func (m *MockPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// PublishProfile stores a copy of event unless a failure is configured.
func (m *MockPublisher) PublishProfile(ctx context.Context, event *ProfileEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	e := *event
	e.Interests = append([]string(nil), event.Interests...)
	m.events = append(m.events, e)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// Events returns the stored events, oldest first.
func (m *MockPublisher) Events() []ProfileEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProfileEvent(nil), m.events...)
}
