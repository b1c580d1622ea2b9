package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/resumekit/authcore/internal/core/domain"
	"github.com/resumekit/authcore/internal/core/ports/driven"
)

// Validator authorizes presented tokens. Checks run in a fixed order,
// each with its own failure mode: signature, expiry, revocation, then
// current identity status. Scope sufficiency is the gate's job, not
// the validator's.
type Validator struct {
	signer        driven.TokenSigner
	store         driven.CredentialStore
	revocations   driven.RevocationStore // nil disables the revocation check
	lookupTimeout time.Duration
}

// ValidatorConfig holds validation collaborators.
type ValidatorConfig struct {
	Signer        driven.TokenSigner
	Store         driven.CredentialStore
	Revocations   driven.RevocationStore
	LookupTimeout time.Duration // bound on the identity-status lookup
}

// NewValidator creates a token validator.
func NewValidator(cfg ValidatorConfig) *Validator {
	lookupTimeout := cfg.LookupTimeout
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}

	return &Validator{
		signer:        cfg.Signer,
		store:         cfg.Store,
		revocations:   cfg.Revocations,
		lookupTimeout: lookupTimeout,
	}
}

// Validate verifies a presented token and returns the identity it
// asserts together with the scopes it grants. Any failure is terminal
// for the request; there is no partial authorization. Tokens can
// outlive an account's good standing, so the identity status comes
// from a live store lookup, never from the token's embedded claims.
func (v *Validator) Validate(ctx context.Context, token string) (*domain.Identity, *domain.Claims, error) {
	if token == "" {
		return nil, nil, domain.ErrInvalidSignature
	}

	// 1. Signature, 2. expiry (both enforced by the signer's parse)
	claims, err := v.signer.Parse(token)
	if err != nil {
		return nil, nil, err
	}

	// 3. Revocation
	if v.revocations != nil {
		revoked, err := v.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: revocation check: %v", domain.ErrTransient, err)
		}
		if revoked {
			return nil, nil, domain.ErrRevoked
		}
	}

	// 4. Identity status
	lookupCtx, cancel := context.WithTimeout(ctx, v.lookupTimeout)
	defer cancel()

	identity, err := v.store.Lookup(lookupCtx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The account is gone; its tokens are no better than disabled
			return nil, nil, domain.ErrIdentityDisabled
		}
		// Timeouts included: a slow store is retryable, never a denial
		return nil, nil, fmt.Errorf("%w: identity lookup: %v", domain.ErrTransient, err)
	}

	if !identity.Active {
		return nil, nil, domain.ErrIdentityDisabled
	}

	return identity, claims, nil
}
