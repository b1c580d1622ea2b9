package driven

import (
	"context"

	"github.com/resumekit/authcore/internal/core/domain"
)

// CredentialStore handles identity persistence (PostgreSQL).
// It is the only component touching persisted secrets. Concurrent
// writes to the same identifier must be serialized by the
// implementation; reads are lock-free and may trail an in-flight
// write by at most one update.
type CredentialStore interface {
	// Lookup retrieves an identity by its immutable identifier
	Lookup(ctx context.Context, identifier string) (*domain.Identity, error)

	// Create persists a new identity. Returns domain.ErrAlreadyExists
	// if the identifier is taken.
	Create(ctx context.Context, identity *domain.Identity) error

	// UpdateHash atomically replaces the stored password hash.
	// Returns domain.ErrNotFound if the identifier is unknown.
	UpdateHash(ctx context.Context, identifier, newHash string) error

	// Disable marks the identity inactive. Identities are never hard
	// deleted while issued tokens could still reference them.
	Disable(ctx context.Context, identifier string) error
}
