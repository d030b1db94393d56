// Package auth guards the admin operations: a shared password exchanged for
// a short-lived signed token.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password is required")
	ErrGateDisabled    = errors.New("admin password is not configured")
)

// Ensure PasswordGate implements Authenticator
var _ Authenticator = (*PasswordGate)(nil)

// PasswordGate compares a credential against one shared admin password.
type PasswordGate struct {
	hash []byte
}

// NewPasswordGate creates a gate for secret, which is either a bcrypt hash or
// plaintext. Plaintext is hashed once here so comparisons always go through
// bcrypt. An empty secret yields a gate that rejects everything.
func NewPasswordGate(secret string) (*PasswordGate, error) {
	if secret == "" {
		return &PasswordGate{}, nil
	}
	if _, err := bcrypt.Cost([]byte(secret)); err == nil {
		return &PasswordGate{hash: []byte(secret)}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &PasswordGate{hash: hash}, nil
}

// Enabled reports whether an admin password is configured.
func (g *PasswordGate) Enabled() bool {
	return len(g.hash) > 0
}

// ValidateCredential rejects empty passwords.
func (g *PasswordGate) ValidateCredential(credential string) error {
	if credential == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Authenticate compares credential with the admin password.
func (g *PasswordGate) Authenticate(ctx context.Context, credential string) error {
	if !g.Enabled() {
		return ErrGateDisabled
	}
	if err := g.ValidateCredential(credential); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(credential)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
