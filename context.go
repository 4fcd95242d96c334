package cxauth

import "context"

type clientIDContextKey struct{}

// WithClientID attaches the caller's coarse client identity (typically
// the normalized source address) to ctx. The Engine keys abuse tracking
// and the step-up decision on it.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDContextKey{}, clientID)
}

// ClientIDFromContext returns the attached client identity, or "" when
// none was set.
func ClientIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(clientIDContextKey{}).(string)
	return id
}

func clientIDOrUnknown(ctx context.Context) string {
	if id := ClientIDFromContext(ctx); id != "" {
		return id
	}
	return "unknown"
}
