package mocks

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/resumekit/authcore/internal/core/domain"
)

// MockTokenSigner is a TokenSigner for testing. Tokens are unsigned
// base64 JSON with a recognizable prefix; Parse enforces the prefix and
// expiry so tests can exercise the validator's ordering without real
// cryptography.
type MockTokenSigner struct {
	// SignErr, when set, is returned by Sign
	SignErr error
}

// NewMockTokenSigner creates a new MockTokenSigner
func NewMockTokenSigner() *MockTokenSigner {
	return &MockTokenSigner{}
}

const mockTokenPrefix = "mocktoken."

func (m *MockTokenSigner) Sign(claims *domain.Claims) (string, error) {
	if m.SignErr != nil {
		return "", m.SignErr
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return mockTokenPrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

func (m *MockTokenSigner) Parse(token string) (*domain.Claims, error) {
	if !strings.HasPrefix(token, mockTokenPrefix) {
		return nil, domain.ErrInvalidSignature
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(token, mockTokenPrefix))
	if err != nil {
		return nil, domain.ErrInvalidSignature
	}
	var claims domain.Claims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrInvalidSignature
	}
	if claims.IsExpired(time.Now()) {
		return nil, domain.ErrExpired
	}
	return &claims, nil
}
