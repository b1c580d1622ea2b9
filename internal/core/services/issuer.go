package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/resumekit/authcore/internal/core/domain"
	"github.com/resumekit/authcore/internal/core/ports/driven"
)

// Issuer mints signed, time-bounded bearer tokens. Pure computation:
// no I/O, safe to run inline on the request path.
type Issuer struct {
	signer     driven.TokenSigner
	defaultTTL time.Duration
	maxTTL     time.Duration
}

// IssuerConfig holds issuance policy.
type IssuerConfig struct {
	Signer     driven.TokenSigner
	DefaultTTL time.Duration // applied when the caller passes ttl <= 0
	MaxTTL     time.Duration // hard cap; longer requests are clamped
}

// NewIssuer creates a token issuer.
func NewIssuer(cfg IssuerConfig) *Issuer {
	defaultTTL := cfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	maxTTL := cfg.MaxTTL
	if maxTTL <= 0 {
		maxTTL = 24 * time.Hour
	}
	if defaultTTL > maxTTL {
		defaultTTL = maxTTL
	}

	return &Issuer{
		signer:     cfg.Signer,
		defaultTTL: defaultTTL,
		maxTTL:     maxTTL,
	}
}

// Issue mints a token for the identity carrying the requested scopes.
// The identity must be active and the requested scopes must be a subset
// of its granted set; issuance never escalates privilege. A nil or
// empty scope request means the identity's full granted set. The ttl is
// clamped to the configured maximum and each token gets a fresh unique
// ID so it can later be revoked individually.
func (s *Issuer) Issue(identity *domain.Identity, scopes []string, ttl time.Duration) (string, *domain.Claims, error) {
	if identity == nil || identity.Identifier == "" {
		return "", nil, domain.ErrInvalidInput
	}
	if !identity.Active {
		return "", nil, domain.ErrIdentityDisabled
	}

	if len(scopes) == 0 {
		scopes = append([]string(nil), identity.Scopes...)
	} else if !identity.GrantsAll(scopes) {
		return "", nil, domain.ErrPermissionDenied
	}

	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl > s.maxTTL {
		ttl = s.maxTTL
	}

	now := time.Now()
	claims := &domain.Claims{
		Subject:   identity.Identifier,
		TokenID:   uuid.NewString(),
		Scopes:    scopes,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := s.signer.Sign(claims)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}
