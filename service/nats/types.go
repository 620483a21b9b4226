package nats

import (
	"time"
)

// ProfileEvent is published when the API echoes a profile creation.
// It is published to the subject "profiles.{wallet_address}" in JetStream.
type ProfileEvent struct {
	WalletAddress string   `json:"wallet_address"`
	Username      string   `json:"username"`
	FullName      string   `json:"full_name"`
	Interests     []string `json:"interests"`

	// Metadata
	RequestID   string    `json:"request_id,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// NewProfileEvent builds an event stamped with the current time.
func NewProfileEvent(walletAddress, username, fullName string, interests []string, requestID string) *ProfileEvent {
	return &ProfileEvent{
		WalletAddress: walletAddress,
		Username:      username,
		FullName:      fullName,
		Interests:     interests,
		RequestID:     requestID,
		PublishedAt:   time.Now().UTC(),
	}
}

// Subject returns the subject the event is published to.
func (e *ProfileEvent) Subject() string {
	return SubjectPrefix + e.WalletAddress
}
