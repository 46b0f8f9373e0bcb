// Package eventbus defines the broker-neutral contract used by service
// gateways. JetStream and NSQ adapters live in internal/pkg/nats and
// internal/pkg/nsq.
package eventbus

import (
	"context"
	"errors"
)

// ErrPoison marks a message that can never be processed. Brokers drop it
// instead of redelivering.
var ErrPoison = errors.New("unprocessable message")

// Publisher publishes a JSON-encodable event on subject
type Publisher interface {
	Publish(ctx context.Context, subject string, message interface{}) error
}

// Handler processes one inbound message
type Handler func(ctx context.Context, subject string, data []byte) error

// Noop discards events. Used when EVENT_BUS=none and in tests.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
