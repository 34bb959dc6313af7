// Package auth resolves the calling principal and their role.
//
// Token issuance lives outside this service; this package only verifies
// bearer tokens and carries the resulting principal through the request
// context so that services can apply role guards without depending on the
// transport layer.
package auth

import "context"

// Role is the access level of a principal.
type Role string

// Recognized roles.
const (
	RoleUser      Role = "user"
	RoleResponder Role = "responder"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleResponder, RoleAdmin:
		return true
	}
	return false
}

// Principal identifies the authenticated caller.
// The zero value represents an anonymous caller.
type Principal struct {
	UserID string
	Role   Role
}

// IsAnonymous reports whether the caller is unauthenticated.
func (p Principal) IsAnonymous() bool {
	return p.UserID == ""
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsResponder reports whether the caller holds the responder role.
func (p Principal) IsResponder() bool {
	return p.Role == RoleResponder
}

type contextKey struct{}

// NewContext returns a context carrying the principal.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext extracts the principal from the context.
// Returns the zero Principal when the request was anonymous.
func FromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(contextKey{}).(Principal)
	return p
}
