package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/piresc/carpool/internal/pkg/logger"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second
	// APIKeyHeader is the header name for API key
	APIKeyHeader = "X-API-Key"
	// IdempotencyKeyHeader lets the remote side deduplicate a request
	IdempotencyKeyHeader = "Idempotency-Key"
)

// StatusError is returned for responses with status >= 400
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Body)
}

// Config configures an APIKeyClient
type Config struct {
	ServiceName string
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
}

// APIKeyClient is an HTTP client with API key authentication
type APIKeyClient struct {
	client      *nethttp.Client
	apiKey      string
	baseURL     string
	serviceName string
}

// NewAPIKeyClient creates a new HTTP client with API key authentication
func NewAPIKeyClient(cfg Config) *APIKeyClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if cfg.APIKey == "" {
		logger.Warn("API key not configured for service", logger.String("service", cfg.ServiceName))
	}

	return &APIKeyClient{
		client:      &nethttp.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
	}
}

// PostJSON posts body as JSON and decodes the response into result.
// idempotencyKey, when set, is sent so the receiver can drop duplicates.
func (c *APIKeyClient) PostJSON(ctx context.Context, endpoint, idempotencyKey string, body interface{}, result interface{}) error {
	resp, err := c.doRequest(ctx, nethttp.MethodPost, endpoint, idempotencyKey, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetJSON performs a GET request and decodes JSON response
func (c *APIKeyClient) GetJSON(ctx context.Context, endpoint string, result interface{}) error {
	resp, err := c.doRequest(ctx, nethttp.MethodGet, endpoint, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *APIKeyClient) doRequest(ctx context.Context, method, endpoint, idempotencyKey string, body interface{}) (*nethttp.Response, error) {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	}

	logger.DebugCtx(ctx, "Making HTTP request",
		logger.String("method", method),
		logger.String("url", url),
		logger.String("service", c.serviceName))

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
		return c.client.Do(req)
	})
	if err != nil {
		logger.ErrorCtx(ctx, "HTTP request failed",
			logger.String("method", method),
			logger.String("url", url),
			logger.String("service", c.serviceName),
			logger.Err(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}

	logger.DebugCtx(ctx, "HTTP request completed",
		logger.String("url", url),
		logger.Int("status_code", resp.StatusCode))

	return resp, nil
}
