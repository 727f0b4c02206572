// Package events publishes notifications about persisted budget documents.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// StateSaved announces that a user's document was written.
type StateSaved struct {
	UserID    string    `json:"user_id"`
	Period    string    `json:"period"`
	Buckets   int       `json:"buckets"`
	Timestamp time.Time `json:"timestamp"`
}

// NewStateSaved creates a StateSaved stamped with the current time
func NewStateSaved(userID, period string, buckets int) *StateSaved {
	return &StateSaved{
		UserID:    userID,
		Period:    period,
		Buckets:   buckets,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *StateSaved) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// StateSavedFromJSON decodes a StateSaved message
func StateSavedFromJSON(data []byte) (*StateSaved, error) {
	var msg StateSaved
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Publisher sends StateSaved notifications.
type Publisher interface {
	PublishStateSaved(ctx context.Context, msg *StateSaved) error
	Close() error
}

// NoopPublisher discards every message. It is used when no broker is configured.
type NoopPublisher struct{}

// PublishStateSaved implements Publisher.
func (NoopPublisher) PublishStateSaved(context.Context, *StateSaved) error { return nil }

// Close implements Publisher.
func (NoopPublisher) Close() error { return nil }
