package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/resumekit/authcore/internal/core/domain"
	"github.com/resumekit/authcore/internal/core/ports/driven"
	"github.com/resumekit/authcore/internal/core/ports/driving"
	"github.com/resumekit/authcore/internal/hashwork"
)

// Ensure provisioner implements Provisioner
var _ driving.Provisioner = (*provisioner)(nil)

// provisioner implements identity lifecycle operations
type provisioner struct {
	store  driven.CredentialStore
	hasher driven.Hasher
	pool   *hashwork.Pool
	logger *slog.Logger
}

// NewProvisioner creates a provisioner.
func NewProvisioner(store driven.CredentialStore, hasher driven.Hasher, pool *hashwork.Pool, logger *slog.Logger) driving.Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &provisioner{
		store:  store,
		hasher: hasher,
		pool:   pool,
		logger: logger,
	}
}

// Register creates a new active identity with the given granted scopes
func (p *provisioner) Register(ctx context.Context, identifier, password string, scopes []string) (*domain.Identity, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		hash    string
		hashErr error
	)
	if err := p.pool.Do(ctx, func() {
		hash, hashErr = p.hasher.Hash(password)
	}); err != nil {
		return nil, err
	}
	if hashErr != nil {
		return nil, hashErr
	}

	now := time.Now()
	identity := &domain.Identity{
		Identifier:   identifier,
		PasswordHash: hash,
		Scopes:       append([]string(nil), scopes...),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := p.store.Create(ctx, identity); err != nil {
		return nil, err
	}

	p.logger.Info("identity registered", "identifier", identifier, "scopes", scopes)
	return identity, nil
}

// Disable retires an identity. Idempotent at the gate: a second call
// finds the record already inactive and simply rewrites it.
func (p *provisioner) Disable(ctx context.Context, identifier string) error {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return domain.ErrInvalidInput
	}

	if err := p.store.Disable(ctx, identifier); err != nil {
		return err
	}

	p.logger.Info("identity disabled", "identifier", identifier)
	return nil
}
