// Package auth resolves who is making a request: the identity type carried through
// the service layer, JWT access/refresh tokens and password hashing.
package auth

import "context"

// Identity is the requester of an operation. The zero value is anonymous.
type Identity struct {
	Username string
}

// Anonymous is the identity of a request without credentials.
var Anonymous = Identity{}

// User returns the identity for username.
func User(username string) Identity {
	return Identity{Username: username}
}

// IsAnonymous reports whether the identity carries no username.
func (i Identity) IsAnonymous() bool {
	return i.Username == ""
}

// Is reports whether the identity is the named, non-anonymous user.
func (i Identity) Is(username string) bool {
	return !i.IsAnonymous() && i.Username == username
}

func (i Identity) String() string {
	if i.IsAnonymous() {
		return "anonymous"
	}
	return i.Username
}

type ctxKey int

const identityKey ctxKey = 1

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity stored in ctx, or Anonymous.
func IdentityFrom(ctx context.Context) Identity {
	if v, ok := ctx.Value(identityKey).(Identity); ok {
		return v
	}
	return Anonymous
}
