package domain

import "time"

// Claims is the payload of a bearer token. Tokens are stateless and
// self-contained; the server keeps no per-token state beyond the
// optional revocation set keyed by TokenID.
type Claims struct {
	Subject   string    `json:"subject"`
	TokenID   string    `json:"token_id"`
	Scopes    []string  `json:"scopes"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HasScope checks whether the token carries the named scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// IsExpired checks the token's expiry against the given instant.
func (c *Claims) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Grant is returned after a successful login. Token is the signed,
// URL-safe encoded bearer token; callers pass it back verbatim and
// never parse it.
type Grant struct {
	Token     string    `json:"token"`
	Scopes    []string  `json:"scopes"`
	ExpiresAt time.Time `json:"expires_at"`
}
