package requestcontext

import "context"

// ContextKey type for context keys to avoid collisions
type ContextKey string

// RequestIDKey is the context key for the request id
const RequestIDKey ContextKey = "request_id"

// WithRequestID returns ctx carrying the request id. Use cases log through
// ctx, so the id reaches every line written while serving the request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID extracts the request id from ctx
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// Detach returns a background context that keeps the request id of ctx but
// none of its deadline or cancellation. Work that must outlive the request,
// such as lock release, runs on it.
func Detach(ctx context.Context) context.Context {
	return WithRequestID(context.Background(), GetRequestID(ctx))
}
