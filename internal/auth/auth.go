// Package auth holds the identity-service boundary. Real credential
// validation is delegated to Google Identity Toolkit; local mode accepts
// anything and never touches the network.
package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// User is the authenticated identity a session is scoped to.
type User struct {
	UID   string
	Email string
}

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (User, error)
	SignOut(ctx context.Context, uid string) error
}
