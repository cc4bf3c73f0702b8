package callid

import "context"

type contextKey struct{}

// WithContext returns a copy of ctx carrying the caller id.
func WithContext(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, contextKey{}, callerID)
}

// FromContext returns the caller id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
