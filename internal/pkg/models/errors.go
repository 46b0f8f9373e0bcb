package models

import "errors"

var (
	// Validation
	ErrInvalidSeats    = errors.New("seats must be greater than zero")
	ErrInvalidCapacity = errors.New("seats offered exceed vehicle capacity")
	ErrAmountMismatch  = errors.New("amount does not match booking total")
	ErrInvalidInput    = errors.New("invalid input")

	// Contention
	ErrInsufficientSeats = errors.New("insufficient seats")
	ErrInvalidToken      = errors.New("invalid hold token")
	ErrConcurrentUpdate  = errors.New("concurrent update")

	// External dependency
	ErrPaymentDeclined = errors.New("payment declined")
	ErrRefundFailed    = errors.New("refund failed")
	ErrProviderFailure = errors.New("payment provider unavailable")

	// State
	ErrTripNotScheduled  = errors.New("trip is not scheduled")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrNotFound        = errors.New("not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrVehicleNotOwned = errors.New("vehicle is not owned by driver")
)

// Kind classifies an error for callers deciding whether and how to retry
type Kind string

const (
	KindValidation         Kind = "Validation"
	KindContention         Kind = "Contention"
	KindExternalDependency Kind = "ExternalDependency"
	KindNotFound           Kind = "NotFound"
	KindAuthorization      Kind = "Authorization"
	KindConflict           Kind = "Conflict"
	KindInternal           Kind = "Internal"
)

// ErrorKind maps err onto the error taxonomy. Unknown errors are Internal.
func ErrorKind(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNotAuthorized), errors.Is(err, ErrVehicleNotOwned):
		return KindAuthorization
	case errors.Is(err, ErrInsufficientSeats), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrConcurrentUpdate):
		return KindContention
	case errors.Is(err, ErrPaymentDeclined), errors.Is(err, ErrRefundFailed), errors.Is(err, ErrProviderFailure):
		return KindExternalDependency
	case errors.Is(err, ErrTripNotScheduled), errors.Is(err, ErrInvalidTransition):
		return KindConflict
	case errors.Is(err, ErrInvalidSeats), errors.Is(err, ErrInvalidCapacity),
		errors.Is(err, ErrAmountMismatch), errors.Is(err, ErrInvalidInput):
		return KindValidation
	}
	return KindInternal
}

// ErrorCode is the short machine name used in API error bodies.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "Internal"
}

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInsufficientSeats, "InsufficientSeats"},
	{ErrTripNotScheduled, "TripNotScheduled"},
	{ErrVehicleNotOwned, "VehicleNotOwned"},
	{ErrInvalidCapacity, "InvalidCapacity"},
	{ErrInvalidSeats, "InvalidSeats"},
	{ErrAmountMismatch, "AmountMismatch"},
	{ErrPaymentDeclined, "PaymentDeclined"},
	{ErrRefundFailed, "RefundFailed"},
	{ErrProviderFailure, "ProviderFailure"},
	{ErrInvalidToken, "InvalidToken"},
	{ErrConcurrentUpdate, "ConcurrentUpdate"},
	{ErrInvalidTransition, "InvalidTransition"},
	{ErrNotFound, "NotFound"},
	{ErrNotAuthorized, "NotAuthorized"},
	{ErrInvalidInput, "InvalidInput"},
}
