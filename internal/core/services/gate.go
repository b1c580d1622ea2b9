package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/resumekit/authcore/internal/core/domain"
	"github.com/resumekit/authcore/internal/core/ports/driven"
	"github.com/resumekit/authcore/internal/core/ports/driving"
	"github.com/resumekit/authcore/internal/hashwork"
)

// Ensure gate implements AuthGate
var _ driving.AuthGate = (*gate)(nil)

// gate combines store, hasher, issuer and validator into the login and
// authorization flows. It is the only layer that shapes externally
// visible denials; precise failure kinds stay in the audit log.
type gate struct {
	store         driven.CredentialStore
	hasher        driven.Hasher
	signer        driven.TokenSigner
	revocations   driven.RevocationStore
	issuer        *Issuer
	validator     *Validator
	pool          *hashwork.Pool
	logger        *slog.Logger
	lookupTimeout time.Duration
}

// GateConfig holds the gate's collaborators.
type GateConfig struct {
	Store         driven.CredentialStore
	Hasher        driven.Hasher
	Signer        driven.TokenSigner
	Revocations   driven.RevocationStore // optional
	Issuer        *Issuer
	Validator     *Validator
	Pool          *hashwork.Pool
	Logger        *slog.Logger
	LookupTimeout time.Duration
}

// NewGate creates the auth gate.
func NewGate(cfg GateConfig) driving.AuthGate {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lookupTimeout := cfg.LookupTimeout
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}

	return &gate{
		store:         cfg.Store,
		hasher:        cfg.Hasher,
		signer:        cfg.Signer,
		revocations:   cfg.Revocations,
		issuer:        cfg.Issuer,
		validator:     cfg.Validator,
		pool:          cfg.Pool,
		logger:        logger,
		lookupTimeout: lookupTimeout,
	}
}

// Login validates credentials and issues a bearer token carrying the
// identity's full granted scope set. Unknown identifier and wrong
// password produce the same external denial; the audit log keeps the
// distinction.
func (g *gate) Login(ctx context.Context, identifier, password string) (*domain.Grant, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	identity, err := g.lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			g.logger.Info("login denied", "identifier", identifier, "reason", "no_such_identity")
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	ok, err := g.verify(ctx, password, identity.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		g.logger.Info("login denied", "identifier", identifier, "reason", "bad_password")
		return nil, domain.ErrBadCredentials
	}

	if !identity.Active {
		g.logger.Info("login denied", "identifier", identifier, "reason", "identity_disabled")
		return nil, domain.ErrIdentityDisabled
	}

	token, claims, err := g.issuer.Issue(identity, nil, 0)
	if err != nil {
		return nil, err
	}

	g.logger.Info("login succeeded", "identifier", identifier, "token_id", claims.TokenID)

	return &domain.Grant{
		Token:     token,
		Scopes:    claims.Scopes,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Authorize validates a presented token and, when requiredScope is
// non-empty, checks that the token grants it.
func (g *gate) Authorize(ctx context.Context, token, requiredScope string) (*domain.Identity, error) {
	identity, claims, err := g.validator.Validate(ctx, token)
	if err != nil {
		g.logger.Info("authorization denied", "reason", err)
		return nil, err
	}

	if requiredScope != "" && !claims.HasScope(requiredScope) {
		g.logger.Info("authorization denied",
			"identifier", identity.Identifier,
			"reason", "insufficient_scope",
			"required", requiredScope,
		)
		return nil, domain.ErrInsufficientScope
	}

	return identity, nil
}

// RotatePassword replaces the stored hash after verifying the current
// password. The store performs the replacement atomically.
func (g *gate) RotatePassword(ctx context.Context, identifier, oldPassword, newPassword string) error {
	if identifier == "" || oldPassword == "" || newPassword == "" {
		return domain.ErrInvalidInput
	}

	identity, err := g.lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			g.logger.Info("rotate denied", "identifier", identifier, "reason", "no_such_identity")
			return domain.ErrBadCredentials
		}
		return err
	}

	ok, err := g.verify(ctx, oldPassword, identity.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		g.logger.Info("rotate denied", "identifier", identifier, "reason", "bad_password")
		return domain.ErrBadCredentials
	}

	if !identity.Active {
		return domain.ErrIdentityDisabled
	}

	newHash, err := g.hash(ctx, newPassword)
	if err != nil {
		return err
	}

	if err := g.store.UpdateHash(ctx, identifier, newHash); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: update hash: %v", domain.ErrTransient, err)
		}
		return err
	}

	g.logger.Info("password rotated", "identifier", identifier)
	return nil
}

// Revoke records a still-valid token in the revocation set until its
// own expiry. Revoking an already expired token is a no-op; tokens
// that do not verify cannot be revoked.
func (g *gate) Revoke(ctx context.Context, token string) error {
	if g.revocations == nil {
		return fmt.Errorf("revocation store not configured")
	}

	claims, err := g.signer.Parse(token)
	if err != nil {
		if errors.Is(err, domain.ErrExpired) {
			return nil // already dead
		}
		return err
	}

	if err := g.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("%w: revoke: %v", domain.ErrTransient, err)
	}

	g.logger.Info("token revoked", "identifier", claims.Subject, "token_id", claims.TokenID)
	return nil
}

// lookup wraps the store lookup with the bounded timeout; timeouts
// surface as retryable, never as a denial.
func (g *gate) lookup(ctx context.Context, identifier string) (*domain.Identity, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	identity, err := g.store.Lookup(lookupCtx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: credential lookup: %v", domain.ErrTransient, err)
	}
	return identity, nil
}

// verify runs password verification on the hash pool. The plaintext
// lives only for the duration of this call.
func (g *gate) verify(ctx context.Context, password, storedHash string) (bool, error) {
	var ok bool
	if err := g.pool.Do(ctx, func() {
		ok = g.hasher.Verify(password, storedHash)
	}); err != nil {
		return false, fmt.Errorf("%w: verify: %v", domain.ErrTransient, err)
	}
	return ok, nil
}

// hash runs password hashing on the hash pool.
func (g *gate) hash(ctx context.Context, password string) (string, error) {
	var (
		encoded string
		hashErr error
	)
	if err := g.pool.Do(ctx, func() {
		encoded, hashErr = g.hasher.Hash(password)
	}); err != nil {
		return "", fmt.Errorf("%w: hash: %v", domain.ErrTransient, err)
	}
	if hashErr != nil {
		return "", hashErr
	}
	return encoded, nil
}
