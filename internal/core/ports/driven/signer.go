package driven

import "github.com/resumekit/authcore/internal/core/domain"

// TokenSigner handles the cryptographic half of token handling: signing
// claims into an opaque, URL-safe encoded string and verifying presented
// strings back into claims. Issuance policy (scope subsetting, TTL caps)
// lives in the services layer, not here.
type TokenSigner interface {
	// Sign encodes and signs the claims
	Sign(claims *domain.Claims) (string, error)

	// Parse verifies the signature and expiry of an encoded token.
	// Returns domain.ErrInvalidSignature for tampered, malformed, or
	// wrongly signed tokens and domain.ErrExpired past expiry.
	Parse(token string) (*domain.Claims, error)
}
