package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/models"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse represents an error response. Kind and ErrorCode are set
// for domain errors so clients can tell retryable contention from bad input.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Code      int         `json:"code,omitempty"`
	Kind      models.Kind `json:"kind,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   errorMessage,
		Code:    statusCode,
	})
}

// DomainErrorResponse maps a use case error onto its HTTP status and writes
// the classified error body. Internal errors hide their message.
func DomainErrorResponse(c echo.Context, err error) error {
	status := StatusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.JSON(status, ErrorResponse{
		Success:   false,
		Error:     msg,
		Code:      status,
		Kind:      models.ErrorKind(err),
		ErrorCode: models.ErrorCode(err),
	})
}

// StatusForError picks the HTTP status for a domain error
func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotAuthorized), errors.Is(err, models.ErrVehicleNotOwned):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInsufficientSeats),
		errors.Is(err, models.ErrTripNotScheduled),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, models.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrRefundFailed), errors.Is(err, models.ErrProviderFailure):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrInvalidSeats),
		errors.Is(err, models.ErrInvalidCapacity),
		errors.Is(err, models.ErrAmountMismatch),
		errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

// ForbiddenResponse sends a 403 Forbidden response
func ForbiddenResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Forbidden"
	}
	return ErrorResponseHandler(c, http.StatusForbidden, errorMessage)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Resource not found"
	}
	return ErrorResponseHandler(c, http.StatusNotFound, errorMessage)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Internal server error"
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, errorMessage)
}

// ServiceUnavailableResponse sends a 503 Service Unavailable response
func ServiceUnavailableResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Service unavailable"
	}
	return ErrorResponseHandler(c, http.StatusServiceUnavailable, errorMessage)
}
