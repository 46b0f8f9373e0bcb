package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/piresc/carpool/internal/pkg/logger"
)

// RetryableFunc is one attempt of a retried operation
type RetryableFunc func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	MaxRetries int           // retries after the first attempt; negative retries until ctx is done
	BaseDelay  time.Duration // delay before the first retry
	MaxDelay   time.Duration // cap on a single delay
	Multiplier float64       // growth of the delay per attempt
	Jitter     bool          // add up to 10% random delay
	Retryable  func(error) bool
	Name       string // operation name for logs
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
		Retryable:  func(error) bool { return true },
	}
}

// Retrier runs a function with exponential backoff between attempts
type Retrier struct {
	config Config
}

// New creates a retrier. Zero fields take the defaults.
func New(config Config) *Retrier {
	def := DefaultConfig()
	if config.BaseDelay <= 0 {
		config.BaseDelay = def.BaseDelay
	}
	if config.MaxDelay < config.BaseDelay {
		config.MaxDelay = config.BaseDelay
	}
	if config.Multiplier < 1 {
		config.Multiplier = def.Multiplier
	}
	if config.Retryable == nil {
		config.Retryable = def.Retryable
	}
	return &Retrier{config: config}
}

// Execute calls fn until it succeeds, returns a non-retryable error, runs out
// of retries or ctx is done. A non-retryable error is returned unwrapped.
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; r.config.MaxRetries < 0 || attempt <= r.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logger.DebugCtx(ctx, "Operation succeeded after retries",
					logger.String("operation", r.config.Name),
					logger.Int("attempts", attempt+1))
			}
			return nil
		}
		lastErr = err

		if !r.config.Retryable(err) {
			return err
		}
		if attempt == r.config.MaxRetries {
			break
		}

		delay := r.delay(attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	logger.WarnCtx(ctx, "Operation failed after all retries",
		logger.String("operation", r.config.Name),
		logger.Err(lastErr),
		logger.Int("attempts", r.config.MaxRetries+1))
	return fmt.Errorf("retry limit exceeded after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

func (r *Retrier) delay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}
	if r.config.Jitter {
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}
