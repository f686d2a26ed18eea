// Package identity provides the identity provider the application
// authenticates against. The rest of the system treats an Identity purely
// as a namespacing input for asset paths and a display value; it carries
// no authorization semantics.
package identity

import "context"

// Identity is the opaque signed-in user: a stable ID and an email.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider is the external identity provider interface. Sign-out is
// client-side token disposal and needs no server call.
type Provider interface {
	// SignUp registers a new account and signs it in.
	SignUp(ctx context.Context, email, password string) (Identity, error)

	// SignIn authenticates an existing account. It returns
	// core.ErrInvalidCredentials without distinguishing an unknown email
	// from a wrong password.
	SignIn(ctx context.Context, email, password string) (Identity, error)
}
