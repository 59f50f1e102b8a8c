// Package authz holds the caller identity derived from a verified token and the
// ownership rules that decide which identity may read or change which row.
package authz

import "context"

// Identity is the authenticated caller. It is derived from a verified token
// and never persisted.
type Identity struct {
	Username string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by the session authenticator.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.Username == "" {
		return Identity{}, false
	}
	return id, true
}
