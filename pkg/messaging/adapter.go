package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ChannelPublisher publishes typed events onto one broker channel.
type ChannelPublisher struct {
	broker  Broker
	channel string
}

func NewChannelPublisher(broker Broker, channel string) *ChannelPublisher {
	return &ChannelPublisher{broker: broker, channel: channel}
}

func (p *ChannelPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	return p.broker.Publish(ctx, p.channel, Message{Type: eventType, Payload: payload})
}

// Envelope is a received Message with the payload still encoded.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses a raw broker payload into an Envelope.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode message: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("message has no type")
	}
	return env, nil
}

// Consume subscribes to channel and calls handler for every envelope until
// ctx is done. Handler errors are logged and do not stop consumption.
func Consume(ctx context.Context, broker Broker, channel string, handler func(context.Context, Envelope) error) error {
	msgs, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}

	for raw := range msgs {
		env, err := Decode(raw)
		if err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("dropping malformed message")
			continue
		}
		if err := handler(ctx, env); err != nil {
			log.Error().Err(err).Str("channel", channel).Str("type", env.Type).Msg("message handler failed")
		}
	}
	return ctx.Err()
}
