// Package signer implements the TokenSigner port with HMAC-signed JWTs.
// The compact JWT serialization doubles as the opaque, URL-safe token
// string handed to callers.
package signer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/resumekit/authcore/internal/core/domain"
	"github.com/resumekit/authcore/internal/core/ports/driven"
)

// Ensure Adapter implements TokenSigner
var _ driven.TokenSigner = (*Adapter)(nil)

// jwtClaims wraps domain.Claims for JWT compatibility
type jwtClaims struct {
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// Config holds the signing material. The algorithm is fixed at
// deployment time; tokens signed with any other are rejected.
type Config struct {
	// Key is the HMAC signing key
	Key []byte

	// Algorithm is one of HS256, HS384, HS512 (default HS256)
	Algorithm string

	// Leeway is the clock-skew tolerance applied to expiry checks at
	// parse time (default 30s)
	Leeway time.Duration
}

// Adapter signs and verifies bearer tokens
type Adapter struct {
	key    []byte
	method *jwt.SigningMethodHMAC
	leeway time.Duration
}

// minimum HMAC key length in bytes; shorter keys undermine the signature
const minKeyLen = 32

// New creates a signer adapter. A missing or short key is a
// configuration error the service must refuse to start with.
func New(cfg Config) (*Adapter, error) {
	if len(cfg.Key) < minKeyLen {
		return nil, fmt.Errorf("signing key must be at least %d bytes, got %d", minKeyLen, len(cfg.Key))
	}

	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", cfg.Algorithm)
	}

	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = 30 * time.Second
	}

	return &Adapter{key: cfg.Key, method: method, leeway: leeway}, nil
}

// Sign encodes and signs the claims
func (a *Adapter) Sign(claims *domain.Claims) (string, error) {
	jc := jwtClaims{
		Scopes: claims.Scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			ID:        claims.TokenID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(a.method, jc)
	return token.SignedString(a.key)
}

// Parse verifies a token string and extracts domain claims. Failure
// modes map onto the domain taxonomy: expiry to domain.ErrExpired,
// everything else (tampering, malformed input, foreign key or
// algorithm) to domain.ErrInvalidSignature.
func (a *Adapter) Parse(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != a.method {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.key, nil
	},
		jwt.WithLeeway(a.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpired
		}
		return nil, domain.ErrInvalidSignature
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidSignature
	}
	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, domain.ErrInvalidSignature
	}

	return &domain.Claims{
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		Scopes:    claims.Scopes,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
