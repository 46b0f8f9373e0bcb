package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestInitNewRelic_Disabled(t *testing.T) {
	assert.Nil(t, InitNewRelic(&models.Config{}))
	assert.Nil(t, InitNewRelic(&models.Config{NewRelic: models.NewRelicConfig{Enabled: true}}))
}

func TestHelpersTolerateMissingTransaction(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	txn := FromEchoContext(c)
	assert.Nil(t, txn)

	assert.NotPanics(t, func() {
		SetTransactionName(txn, "GET /trips")
		AddTransactionAttribute(txn, "trip_id", "t1")
		NoticeTransactionError(txn, errors.New("boom"))
	})

	called := false
	err := WithSegment(context.Background(), "inventory.Hold", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestStartBackgroundTransaction_NilApp(t *testing.T) {
	ctx := context.Background()
	got, end := StartBackgroundTransaction(ctx, nil, "bookings.ExpireStale")
	assert.Equal(t, ctx, got)
	assert.NotPanics(t, func() { end(errors.New("x")) })
}

func TestInstrumentHTTPRequest_NoTransaction(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://provider/charges", nil)
	resp, err := InstrumentHTTPRequest(context.Background(), req, func() (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusCreated}, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
