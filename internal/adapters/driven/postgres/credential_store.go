package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/resumekit/authcore/internal/core/domain"
	"github.com/resumekit/authcore/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements driven.CredentialStore using PostgreSQL.
// Writes to a record run inside a transaction holding that row's lock
// (SELECT ... FOR UPDATE), so concurrent rotations or disables of the
// same identifier serialize instead of losing updates. Reads take no
// locks.
type CredentialStore struct {
	db *DB
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// uniqueViolation is the PostgreSQL error code for duplicate keys
const uniqueViolation = "23505"

// Lookup retrieves an identity by its identifier
func (s *CredentialStore) Lookup(ctx context.Context, identifier string) (*domain.Identity, error) {
	query := `
		SELECT identifier, password_hash, scopes, active, created_at, updated_at
		FROM identities
		WHERE identifier = $1
	`

	var identity domain.Identity
	err := s.db.QueryRowContext(ctx, query, identifier).Scan(
		&identity.Identifier,
		&identity.PasswordHash,
		pq.Array(&identity.Scopes),
		&identity.Active,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &identity, nil
}

// Create persists a new identity
func (s *CredentialStore) Create(ctx context.Context, identity *domain.Identity) error {
	query := `
		INSERT INTO identities (identifier, password_hash, scopes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		identity.Identifier,
		identity.PasswordHash,
		pq.Array(identity.Scopes),
		identity.Active,
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyExists
		}
		return err
	}

	return nil
}

// UpdateHash atomically replaces the stored password hash
func (s *CredentialStore) UpdateHash(ctx context.Context, identifier, newHash string) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, identifier); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE identities SET password_hash = $1, updated_at = $2 WHERE identifier = $3`,
			newHash, time.Now(), identifier,
		)
		return err
	})
}

// Disable marks the identity inactive
func (s *CredentialStore) Disable(ctx context.Context, identifier string) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, identifier); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE identities SET active = FALSE, updated_at = $1 WHERE identifier = $2`,
			time.Now(), identifier,
		)
		return err
	})
}

// lockRow takes the row lock for the identifier, serializing concurrent
// writers of the same record
func lockRow(ctx context.Context, tx *sql.Tx, identifier string) error {
	var found string
	err := tx.QueryRowContext(ctx,
		`SELECT identifier FROM identities WHERE identifier = $1 FOR UPDATE`,
		identifier,
	).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
