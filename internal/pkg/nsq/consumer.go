package nsq

import (
	"context"
	"errors"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/carpool/internal/pkg/eventbus"
	"github.com/piresc/carpool/internal/pkg/logger"
)

// Consumer handles consuming messages from an NSQ topic/channel
type Consumer struct {
	consumer *nsq.Consumer
	cancel   context.CancelFunc
}

// NewConsumer subscribes handler to topic on channel and connects to nsqd
func NewConsumer(topic, channel, address string, handler eventbus.Handler) (*Consumer, error) {
	consumer, err := nsq.NewConsumer(topic, channel, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	consumer.AddHandler(messageHandler(ctx, topic, handler))

	if err := consumer.ConnectToNSQD(address); err != nil {
		cancel()
		consumer.Stop()
		return nil, fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}

	return &Consumer{consumer: consumer, cancel: cancel}, nil
}

// messageHandler requeues on error, except poison messages which are finished
func messageHandler(ctx context.Context, topic string, handler eventbus.Handler) nsq.HandlerFunc {
	return func(message *nsq.Message) error {
		err := handler(ctx, topic, message.Body)
		if errors.Is(err, eventbus.ErrPoison) {
			logger.Error("Dropping unprocessable message", logger.String("topic", topic), logger.Err(err))
			return nil
		}
		if err != nil {
			logger.Warn("Message processing failed, requeueing", logger.String("topic", topic), logger.Err(err))
		}
		return err
	}
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
	c.cancel()
}
