package messaging

import (
	"context"
	"errors"
)

// ErrClosed is returned by brokers after Close.
var ErrClosed = errors.New("broker is closed")

// Broker defines the interface for message brokers
type Broker interface {
	// Publish JSON-encodes message onto channel.
	Publish(ctx context.Context, channel string, message interface{}) error
	// Subscribe streams raw payloads until ctx is done or the broker closes.
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Publisher defines the interface for publishing typed events
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Message is the envelope every event travels in.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
