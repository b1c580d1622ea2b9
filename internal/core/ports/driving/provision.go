package driving

import (
	"context"

	"github.com/resumekit/authcore/internal/core/domain"
)

// Provisioner manages the identity lifecycle (admin operations)
type Provisioner interface {
	// Register creates a new identity with the given granted scopes.
	// Returns domain.ErrAlreadyExists if the identifier is taken.
	Register(ctx context.Context, identifier, password string, scopes []string) (*domain.Identity, error)

	// Disable retires an identity. Outstanding tokens for it start
	// failing validation immediately.
	Disable(ctx context.Context, identifier string) error
}
