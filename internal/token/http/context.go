// Package http provides HTTP handlers and middleware for container token
// issuance and session authentication.
package http

import (
	"context"

	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// identityKey is a context key type for storing validated token identities.
type identityKey struct{}

// WithIdentity stores a validated identity in the context.
// Called by the session authentication middleware after a token passes
// verification.
func WithIdentity(ctx context.Context, identity *tokenDomain.ValidatedIdentity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the validated identity from the context.
// Returns (identity, true) if present, or (nil, false) if no identity was set.
func GetIdentity(ctx context.Context) (*tokenDomain.ValidatedIdentity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*tokenDomain.ValidatedIdentity)
	return identity, ok
}
