package nsq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
)

// publisher is the subset of *nsq.Producer used here
type publisher interface {
	Publish(topic string, body []byte) error
	Ping() error
	Stop()
}

// Producer publishes JSON events to nsqd topics named after the event subject
type Producer struct {
	producer publisher
}

// NewProducer creates a new NSQ producer and verifies the daemon answers
func NewProducer(address string) (*Producer, error) {
	producer, err := nsq.NewProducer(address, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &Producer{producer: producer}, nil
}

// Publish sends message to the topic named subject. nsqd publishes are
// synchronous, so ctx is only checked before sending.
func (p *Producer) Publish(ctx context.Context, subject string, message interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.producer.Publish(subject, msgBytes); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Ping checks the daemon for health reporting
func (p *Producer) Ping() error {
	return p.producer.Ping()
}

// Stop gracefully stops the producer
func (p *Producer) Stop() {
	p.producer.Stop()
}
