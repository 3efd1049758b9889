// Package auth implements account registration, password checks and the
// signed session tokens that identify bill owners.
package auth

import (
	"context"

	"github.com/mmynk/splitbill/internal/models"
)

// Authenticator verifies who is calling. Bills are owned by the user it
// returns, so every bill-scoped RPC depends on it.
type Authenticator interface {
	// Register creates an account. The credential format depends on the
	// implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user whose credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// Lookup returns the user with the given ID.
	Lookup(ctx context.Context, userID string) (*models.User, error)

	// ValidateCredential reports whether a credential is acceptable for a new account.
	ValidateCredential(credential string) error
}
