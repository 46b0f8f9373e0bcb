package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chargeBody struct {
	Amount int64 `json:"amount"`
}

func TestAPIKeyClient_PostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/charges", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(APIKeyHeader))
		assert.Equal(t, "pay-1", r.Header.Get(IdempotencyKeyHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body chargeBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(2000), body.Amount)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reference":"ch_123"}`))
	}))
	defer server.Close()

	client := NewAPIKeyClient(Config{ServiceName: "payment-provider", BaseURL: server.URL + "/", APIKey: "secret"})

	var result struct {
		Reference string `json:"reference"`
	}
	err := client.PostJSON(context.Background(), "/v1/charges", "pay-1", chargeBody{Amount: 2000}, &result)
	require.NoError(t, err)
	assert.Equal(t, "ch_123", result.Reference)
}

func TestAPIKeyClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewAPIKeyClient(Config{BaseURL: server.URL, APIKey: "secret"})

	err := client.PostJSON(context.Background(), "/v1/charges", "", chargeBody{}, nil)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "upstream broke")

	err = client.GetJSON(context.Background(), "/v1/status", nil)
	require.True(t, errors.As(err, &statusErr))
}

func TestAPIKeyClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewAPIKeyClient(Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond})

	err := client.PostJSON(context.Background(), "/slow", "", nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestAPIKeyClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewAPIKeyClient(Config{BaseURL: server.URL})

	var out map[string]string
	err := client.PostJSON(context.Background(), "/", "", nil, &out)
	assert.ErrorContains(t, err, "failed to decode response")
}

func TestNewAPIKeyClient_DefaultTimeout(t *testing.T) {
	client := NewAPIKeyClient(Config{BaseURL: "http://localhost:1"})
	assert.Equal(t, DefaultTimeout, client.client.Timeout)
}
