package app

import (
	"context"
	"strings"
)

// visitorContextKey stores context keys for the acting visitor id.
type visitorContextKey struct{}

// WithVisitor attaches the acting visitor id to ctx. Requests without a
// visitor act with full access (local CLI, import).
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return ctx
	}
	return context.WithValue(ctx, visitorContextKey{}, visitorID)
}

// VisitorFromContext returns the acting visitor id when present.
func VisitorFromContext(ctx context.Context) (string, bool) {
	visitorID, ok := ctx.Value(visitorContextKey{}).(string)
	if !ok || visitorID == "" {
		return "", false
	}
	return visitorID, true
}

// canRead reports whether the acting visitor may see the list.
func canRead(ctx context.Context, ownerID string, public bool) bool {
	visitorID, ok := VisitorFromContext(ctx)
	return !ok || public || visitorID == ownerID
}

// canWrite reports whether the acting visitor may mutate the list.
func canWrite(ctx context.Context, ownerID string) bool {
	visitorID, ok := VisitorFromContext(ctx)
	return !ok || visitorID == ownerID
}
