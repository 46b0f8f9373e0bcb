package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// FromEchoContext returns the transaction nrecho attached to the request
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext returns the transaction carried by ctx, if any
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

func SetTransactionName(txn *newrelic.Transaction, name string) {
	if txn != nil {
		txn.SetName(name)
	}
}

func AddTransactionAttribute(txn *newrelic.Transaction, key string, value interface{}) {
	if txn != nil {
		txn.AddAttribute(key, value)
	}
}

func NoticeTransactionError(txn *newrelic.Transaction, err error) {
	if txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// WithSegment runs fn inside a segment of the transaction found in ctx
func WithSegment(ctx context.Context, name string, fn func() error) error {
	if txn := FromContext(ctx); txn != nil {
		defer txn.StartSegment(name).End()
	}
	return fn()
}

// StartBackgroundTransaction opens a non-web transaction for work outside
// HTTP requests (expiry sweeps, broker consumers) and returns a ctx carrying
// it. end must be called when the work finishes.
func StartBackgroundTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, func(error)) {
	if app == nil {
		return ctx, func(error) {}
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), func(err error) {
		NoticeTransactionError(txn, err)
		txn.End()
	}
}
