package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/logger"
)

// ackable is the part of jetstream.Msg the consumer needs
type ackable interface {
	Subject() string
	Data() []byte
	Ack() error
	Nak() error
	Term() error
}

// Consumer pushes messages of a durable consumer into a handler
type Consumer struct {
	consumeCtx jetstream.ConsumeContext
	cancel     context.CancelFunc
}

// NewConsumer creates (or updates) the durable consumer described by cfg and
// starts delivering its messages to handler.
func NewConsumer(ctx context.Context, client *Client, cfg ConsumerConfig, handler eventbus.Handler) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}

	cons, err := client.js.CreateOrUpdateConsumer(ctx, cfg.StreamName, cfg.toJetStream())
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer %s: %w", cfg.ConsumerName, err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	consumeCtx, err := cons.Consume(func(msg jetstream.Msg) {
		dispatch(runCtx, msg, handler)
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	logger.Info("JetStream consumer started",
		logger.String("stream", cfg.StreamName),
		logger.String("consumer", cfg.ConsumerName),
		logger.String("subject", cfg.FilterSubject))

	return &Consumer{consumeCtx: consumeCtx, cancel: cancel}, nil
}

// dispatch acks on success, terminates poison messages and naks the rest
func dispatch(ctx context.Context, msg ackable, handler eventbus.Handler) {
	err := handler(ctx, msg.Subject(), msg.Data())
	switch {
	case err == nil:
		if ackErr := msg.Ack(); ackErr != nil {
			logger.Error("Failed to ACK message", logger.Err(ackErr))
		}
	case errors.Is(err, eventbus.ErrPoison):
		logger.Error("Dropping unprocessable message",
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		if termErr := msg.Term(); termErr != nil {
			logger.Error("Failed to TERM message", logger.Err(termErr))
		}
	default:
		logger.Warn("Message processing failed, requesting redelivery",
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		if nakErr := msg.Nak(); nakErr != nil {
			logger.Error("Failed to NAK message", logger.Err(nakErr))
		}
	}
}

// Stop stops delivery
func (c *Consumer) Stop() {
	logger.Info("Stopping consumer")
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
}
