package render

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDContextKey contextKey = "wavegif.requestID"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext returns the request id of ctx, a new id is generated
// when ctx does not carry one.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok && len(id) > 0 {
		return id
	}

	return uuid.NewString()
}
