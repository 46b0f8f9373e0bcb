package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/carpool/internal/pkg/logger"
)

// Client holds a NATS connection and its JetStream context
type Client struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// NewClient connects to NATS and opens JetStream
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name("carpool"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Client{conn: conn, js: js}, nil
}

// GetConn returns the underlying connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// JetStream returns the JetStream context
func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// EnsureStream creates the stream or updates it to match cfg
func (c *Client) EnsureStream(ctx context.Context, cfg StreamConfig) error {
	_, err := c.js.CreateOrUpdateStream(ctx, cfg.toJetStream())
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
	}
	logger.Info("JetStream stream ready",
		logger.String("stream", cfg.Name),
		logger.Strings("subjects", cfg.Subjects))
	return nil
}

// Publish stores data on subject and waits for the stream ack
func (c *Client) Publish(ctx context.Context, subject string, data []byte) error {
	if _, err := c.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// IsConnected reports connection state for health checks
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close drains the connection
func (c *Client) Close() {
	if c.conn != nil {
		if err := c.conn.Drain(); err != nil {
			c.conn.Close()
		}
	}
}
