// context.go provides utilities for propagating request IDs through
// Go context.Context, so reports correlate with the request or job that
// produced them.

package report

import "context"

// Context key types (unexported to avoid collisions)
type requestIDKey struct{}

// WithRequestID returns a context with the request ID attached.
// Reports recorded under this context carry the ID in their RequestID
// field.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext extracts the request ID from context.
// Returns empty string and false if not set or if the ID is empty.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey{})
	id, ok := v.(string)
	return id, ok && id != ""
}
