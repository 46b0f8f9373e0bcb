// Package circuitbreaker stops calls to a failing dependency for a cool-down
// period so callers fail fast instead of piling up on timeouts.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/piresc/carpool/internal/pkg/logger"
)

// State represents the circuit breaker state
type State int

const (
	// StateClosed allows requests to pass through
	StateClosed State = iota
	// StateOpen blocks requests and returns immediately
	StateOpen
	// StateHalfOpen lets a limited number of probes through
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Errors
var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrTooManyRequests    = errors.New("too many requests in half-open state")
)

// Config holds circuit breaker configuration
type Config struct {
	Name             string
	MaxRequests      uint32        // probes allowed while half-open
	Interval         time.Duration // counters reset period while closed
	Timeout          time.Duration // open -> half-open delay
	FailureThreshold uint32        // consecutive failures that open the circuit
	IsFailure        func(err error) bool
}

// DefaultConfig returns a default circuit breaker configuration
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 5,
		IsFailure: func(err error) bool {
			return err != nil
		},
	}
}

// CircuitBreaker implements the circuit breaker pattern
type CircuitBreaker struct {
	config Config
	nowFn  func() time.Time

	mutex               sync.Mutex
	state               State
	requests            uint32
	consecutiveFailures uint32
	expiry              time.Time
}

// New creates a new circuit breaker
func New(config Config) *CircuitBreaker {
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}
	cb := &CircuitBreaker{config: config, nowFn: time.Now}
	cb.expiry = cb.nowFn().Add(config.Interval)
	return cb
}

// Execute runs fn unless the circuit is open. fn is never retried.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	now := cb.nowFn()
	switch cb.state {
	case StateClosed:
		if cb.expiry.Before(now) {
			cb.requests, cb.consecutiveFailures = 0, 0
			cb.expiry = now.Add(cb.config.Interval)
		}
	case StateOpen:
		if !cb.expiry.Before(now) {
			return ErrCircuitBreakerOpen
		}
		cb.setState(StateHalfOpen)
		cb.requests = 0
	case StateHalfOpen:
		if cb.requests >= cb.config.MaxRequests {
			return ErrTooManyRequests
		}
	}

	cb.requests++
	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	now := cb.nowFn()
	if !cb.config.IsFailure(err) {
		cb.consecutiveFailures = 0
		if cb.state == StateHalfOpen {
			cb.setState(StateClosed)
			cb.expiry = now.Add(cb.config.Interval)
		}
		return
	}

	cb.consecutiveFailures++
	if cb.state == StateHalfOpen ||
		(cb.state == StateClosed && cb.consecutiveFailures >= cb.config.FailureThreshold) {
		cb.setState(StateOpen)
		cb.expiry = now.Add(cb.config.Timeout)
	}
}

func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}
	logger.Warn("Circuit breaker state changed",
		logger.String("name", cb.config.Name),
		logger.String("from", cb.state.String()),
		logger.String("to", state.String()),
		logger.Int64("consecutive_failures", int64(cb.consecutiveFailures)))
	cb.state = state
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}
