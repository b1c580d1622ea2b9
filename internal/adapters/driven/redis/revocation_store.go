package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resumekit/authcore/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RevocationStore = (*RevocationStore)(nil)

// revokedPrefix is the key prefix for revocation entries
const revokedPrefix = "revoked:"

// RevocationStore implements driven.RevocationStore using Redis.
// Each entry carries a TTL matching the token's remaining lifetime, so
// the set cleans itself up: once the token would fail the expiry check
// anyway, its entry is gone.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a new Redis-backed RevocationStore
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke records a token ID as revoked until the given instant
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// Token already expired, nothing to record
		return nil
	}

	if err := s.client.Set(ctx, revokedPrefix+tokenID, until.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to record revocation: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID is in the revocation set
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedPrefix+tokenID).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return true, nil
}
