package newrelic

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// InstrumentHTTPRequest records an outgoing call as an external segment of
// the transaction in ctx.
//
//	resp, err := InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
//		return client.Do(req)
//	})
func InstrumentHTTPRequest(ctx context.Context, req *http.Request, do func() (*http.Response, error)) (*http.Response, error) {
	txn := FromContext(ctx)
	if txn == nil {
		return do()
	}

	segment := newrelic.StartExternalSegment(txn, req)
	defer segment.End()

	resp, err := do()
	if resp != nil {
		segment.Response = resp
	}
	return resp, err
}
