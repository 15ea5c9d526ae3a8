// Package correlation propagates a per-request correlation ID through
// context, HTTP headers and log records.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is the HTTP header carrying the correlation ID.
const HeaderName = "X-Correlation-ID"

type contextKey struct{}

// FromContext extracts the correlation ID, or "" when absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// WithID returns a context carrying the given correlation ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// NewID generates a fresh correlation ID.
func NewID() string {
	return uuid.New().String()
}
