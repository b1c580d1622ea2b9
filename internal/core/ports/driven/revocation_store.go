package driven

import (
	"context"
	"time"
)

// RevocationStore tracks explicitly invalidated token IDs (Redis).
// Entries only need to live until the token's own expiry; after that
// the expiry check denies the token anyway.
type RevocationStore interface {
	// Revoke records a token ID as revoked until the given instant.
	// A no-op if the instant is already in the past.
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	// IsRevoked reports whether the token ID is in the revocation set
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
