package nats

import (
	"context"
	"encoding/json"
	"fmt"
)

// streamPublisher is satisfied by Client
type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Producer publishes JSON-encoded events into JetStream
type Producer struct {
	client streamPublisher
}

// NewProducer creates a producer on top of an established client
func NewProducer(client *Client) *Producer {
	return &Producer{client: client}
}

// Publish marshals message and publishes it on subject
func (p *Producer) Publish(ctx context.Context, subject string, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return p.client.Publish(ctx, subject, msgBytes)
}
