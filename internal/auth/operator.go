// Package auth authenticates back-office operators and issues their tokens.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Operator is an authenticated back-office user.
type Operator struct {
	Username string
}

// Authenticator verifies operator credentials.
// This abstraction allows swapping between a single configured operator and
// a user table later without changing the transport layer.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Operator, error)
}

// StaticAuthenticator checks credentials against one configured operator
// whose password is stored as a bcrypt hash.
type StaticAuthenticator struct {
	username     string
	passwordHash []byte
}

// NewStaticAuthenticator creates an authenticator for a single operator.
func NewStaticAuthenticator(username, passwordHash string) *StaticAuthenticator {
	return &StaticAuthenticator{
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Authenticate returns the operator if username and password match.
func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) (*Operator, error) {
	// Always run bcrypt so unknown usernames take as long as bad passwords.
	hashErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) != 1 || hashErr != nil {
		return nil, ErrInvalidCredentials
	}
	return &Operator{Username: a.username}, nil
}
