package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessResponse(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
		data       interface{}
	}{
		{
			name:       "Created booking",
			statusCode: http.StatusCreated,
			message:    "Booking created",
			data:       map[string]interface{}{"id": "123", "status": "pending_payment"},
		},
		{
			name:       "Nil data",
			statusCode: http.StatusOK,
			message:    "Success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			err := SuccessResponse(c, tt.statusCode, tt.message, tt.data)
			assert.NoError(t, err)
			assert.Equal(t, tt.statusCode, rec.Code)

			var response Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.True(t, response.Success)
			assert.Equal(t, tt.message, response.Message)
		})
	}
}

func TestErrorResponseHelpers(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c echo.Context) error
		status   int
		expected string
	}{
		{"bad request", func(c echo.Context) error { return BadRequestResponse(c, "Invalid request body") }, http.StatusBadRequest, "Invalid request body"},
		{"unauthorized default", func(c echo.Context) error { return UnauthorizedResponse(c, "") }, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden default", func(c echo.Context) error { return ForbiddenResponse(c, "") }, http.StatusForbidden, "Forbidden"},
		{"not found default", func(c echo.Context) error { return NotFoundResponse(c, "") }, http.StatusNotFound, "Resource not found"},
		{"internal default", func(c echo.Context) error { return InternalServerErrorResponse(c, "") }, http.StatusInternalServerError, "Internal server error"},
		{"unavailable", func(c echo.Context) error { return ServiceUnavailableResponse(c, "db down") }, http.StatusServiceUnavailable, "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			assert.NoError(t, tt.call(c))
			assert.Equal(t, tt.status, rec.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tt.expected, response.Error)
			assert.Equal(t, tt.status, response.Code)
		})
	}
}

func TestDomainErrorResponse(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   models.Kind
		code   string
	}{
		{fmt.Errorf("hold: %w", models.ErrInsufficientSeats), http.StatusConflict, models.KindContention, "InsufficientSeats"},
		{models.ErrTripNotScheduled, http.StatusConflict, models.KindConflict, "TripNotScheduled"},
		{models.ErrVehicleNotOwned, http.StatusForbidden, models.KindAuthorization, "VehicleNotOwned"},
		{models.ErrInvalidCapacity, http.StatusBadRequest, models.KindValidation, "InvalidCapacity"},
		{models.ErrAmountMismatch, http.StatusBadRequest, models.KindValidation, "AmountMismatch"},
		{models.ErrPaymentDeclined, http.StatusPaymentRequired, models.KindExternalDependency, "PaymentDeclined"},
		{models.ErrRefundFailed, http.StatusBadGateway, models.KindExternalDependency, "RefundFailed"},
		{models.ErrNotFound, http.StatusNotFound, models.KindNotFound, "NotFound"},
		{models.ErrNotAuthorized, http.StatusForbidden, models.KindAuthorization, "NotAuthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, rec := newContext()

			assert.NoError(t, DomainErrorResponse(c, tt.err))
			assert.Equal(t, tt.status, rec.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.kind, response.Kind)
			assert.Equal(t, tt.code, response.ErrorCode)
			assert.Equal(t, tt.err.Error(), response.Error)
		})
	}
}

func TestDomainErrorResponse_HidesInternalErrors(t *testing.T) {
	c, rec := newContext()

	assert.NoError(t, DomainErrorResponse(c, errors.New("pq: connection reset")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Internal server error", response.Error)
	assert.Equal(t, models.KindInternal, response.Kind)
}
