package auth

import (
	"context"
	"errors"
)

// Identity is the verified caller of the current request. It is published
// into the request context by the gatekeeper after token verification and
// is never writable from client input.
type Identity struct {
	UserID   uint64
	TenantID uint64
}

// identityKey is unexported so nothing outside this package can forge or
// overwrite an identity in a context.
type identityKey struct{}

// ErrNoIdentity means a tenant-scoped operation ran without a verified
// identity in its context. That is a programming error (a route escaped
// the gatekeeper), so callers should fail the request, never substitute a
// default tenant.
var ErrNoIdentity = errors.New("no identity in request context (gatekeeper not run?)")

// WithIdentity returns a child context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the verified identity, failing closed when
// absent.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.TenantID == 0 {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
