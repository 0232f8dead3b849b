package middleware

import "context"

type ctxKey string

const ctxSessionID ctxKey = "session_id"

// WithSessionID seeds the context with a cart session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// SessionIDFromContext returns the cart session id seeded by Session.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}
