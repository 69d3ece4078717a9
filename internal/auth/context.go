package auth

import (
	"context"
	"net/http"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionContextKey contextKey = "session"

// GetSession retrieves the verified session claims from the context.
//
// Returns nil if the request is anonymous.
func GetSession(ctx context.Context) *Claims {
	claims, ok := ctx.Value(sessionContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetSessionFromRequest is a convenience wrapper around GetSession.
func GetSessionFromRequest(r *http.Request) *Claims {
	return GetSession(r.Context())
}

// WithSession stores verified claims in the context. Called by middleware
// after the token has been verified.
func WithSession(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, sessionContextKey, claims)
}
