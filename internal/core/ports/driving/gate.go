package driving

import (
	"context"

	"github.com/resumekit/authcore/internal/core/domain"
)

// AuthGate is the single entry point for authentication and
// authorization. Login and Authorize are independent stateless flows,
// not one session state machine.
type AuthGate interface {
	// Login exchanges credentials for a signed bearer token. Unknown
	// identifier and wrong password both return the uniform
	// domain.ErrBadCredentials.
	Login(ctx context.Context, identifier, password string) (*domain.Grant, error)

	// Authorize validates a presented token and checks that it carries
	// the required scope. An empty requiredScope skips the scope check.
	Authorize(ctx context.Context, token, requiredScope string) (*domain.Identity, error)

	// RotatePassword atomically replaces the stored hash after
	// verifying the current password
	RotatePassword(ctx context.Context, identifier, oldPassword, newPassword string) error

	// Revoke invalidates a token before its natural expiry. The token
	// must still verify; revoking an already expired token is a no-op.
	Revoke(ctx context.Context, token string) error
}
