package gateway

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/piresc/carpool/internal/pkg/circuitbreaker"
	httpclient "github.com/piresc/carpool/internal/pkg/http"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
)

const (
	chargePath = "/v1/charges"
	refundPath = "/v1/refunds"
)

// jsonPoster is satisfied by *httpclient.APIKeyClient
type jsonPoster interface {
	PostJSON(ctx context.Context, endpoint, idempotencyKey string, body interface{}, result interface{}) error
}

// HTTPProvider talks to a remote payment provider over JSON. Each request is
// sent once with the payment id as idempotency key. A breaker stops calls
// while the provider keeps failing.
type HTTPProvider struct {
	client  jsonPoster
	breaker *circuitbreaker.CircuitBreaker
}

// NewHTTPProvider creates a provider client for cfg.ProviderURL
func NewHTTPProvider(cfg models.PaymentConfig) *HTTPProvider {
	client := httpclient.NewAPIKeyClient(httpclient.Config{
		ServiceName: "payment-provider",
		BaseURL:     cfg.ProviderURL,
		APIKey:      cfg.ProviderAPIKey,
		Timeout:     cfg.ProviderTimeout,
	})
	return newHTTPProvider(client)
}

func newHTTPProvider(client jsonPoster) *HTTPProvider {
	bc := circuitbreaker.DefaultConfig("payment-provider")
	bc.Timeout = 30 * time.Second
	bc.IsFailure = isProviderFailure
	return &HTTPProvider{
		client:  client,
		breaker: circuitbreaker.New(bc),
	}
}

// Charge posts a charge request
func (p *HTTPProvider) Charge(ctx context.Context, req models.ChargeRequest) (models.ProviderResult, error) {
	return p.post(ctx, chargePath, req.PaymentID.String(), req)
}

// Refund posts a refund request
func (p *HTTPProvider) Refund(ctx context.Context, req models.RefundRequest) (models.ProviderResult, error) {
	return p.post(ctx, refundPath, "refund-"+req.PaymentID.String(), req)
}

func (p *HTTPProvider) post(ctx context.Context, path, idempotencyKey string, body interface{}) (models.ProviderResult, error) {
	var result models.ProviderResult
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.client.PostJSON(ctx, path, idempotencyKey, body, &result)
	})

	var statusErr *httpclient.StatusError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &statusErr) && statusErr.StatusCode == nethttp.StatusPaymentRequired:
		// 402 is a decline, not an outage
		return models.ProviderResult{Success: false, Reason: statusErr.Body}, nil
	case errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		logger.WarnCtx(ctx, "Payment provider circuit open", logger.String("path", path))
	}
	return models.ProviderResult{}, fmt.Errorf("payment provider %s: %w", path, err)
}

// State exposes the breaker state for health reporting
func (p *HTTPProvider) State() circuitbreaker.State {
	return p.breaker.State()
}

func isProviderFailure(err error) bool {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == nethttp.StatusTooManyRequests
	}
	return err != nil
}
