package auth

import (
	"context"
	"strings"
)

// LocalAuthenticator backs local mode: any non-empty credentials start a
// session, nothing is validated, nothing persists.
type LocalAuthenticator struct{}

func NewLocal() *LocalAuthenticator { return &LocalAuthenticator{} }

func (*LocalAuthenticator) SignIn(_ context.Context, email, password string) (User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	return User{UID: "local-user", Email: email}, nil
}

func (*LocalAuthenticator) SignOut(context.Context, string) error { return nil }
