package domain

import "time"

// Identity represents a registered principal capable of authenticating.
// The Identifier is immutable once created; all store operations key on it.
type Identity struct {
	Identifier   string    `json:"identifier"`
	PasswordHash string    `json:"-"` // Never serialize
	Scopes       []string  `json:"scopes"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasScope checks whether the identity has been granted the named scope.
func (i *Identity) HasScope(scope string) bool {
	for _, s := range i.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// GrantsAll checks whether every requested scope is in the identity's
// granted set. An empty request is trivially granted.
func (i *Identity) GrantsAll(requested []string) bool {
	for _, s := range requested {
		if !i.HasScope(s) {
			return false
		}
	}
	return true
}

// IdentitySummary provides a safe view of identity data (no password hash)
type IdentitySummary struct {
	Identifier string   `json:"identifier"`
	Scopes     []string `json:"scopes"`
	Active     bool     `json:"active"`
}

// ToSummary converts an Identity to IdentitySummary
func (i *Identity) ToSummary() *IdentitySummary {
	return &IdentitySummary{
		Identifier: i.Identifier,
		Scopes:     i.Scopes,
		Active:     i.Active,
	}
}
