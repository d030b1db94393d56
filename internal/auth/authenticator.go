package auth

import (
	"context"
)

// Authenticator checks an admin credential.
// This abstraction allows swapping the shared password for another method
// without changing the service layer code.
type Authenticator interface {
	// Authenticate returns nil when the credential grants admin access.
	Authenticate(ctx context.Context, credential string) error

	// ValidateCredential checks the credential format before comparing.
	ValidateCredential(credential string) error
}
