package mocks

import (
	"context"
	"sync"
	"time"
)

// MockRevocationStore is an in-memory RevocationStore for testing
type MockRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time

	// Err, when set, is returned by every call
	Err error
}

// NewMockRevocationStore creates a new MockRevocationStore
func NewMockRevocationStore() *MockRevocationStore {
	return &MockRevocationStore{
		revoked: make(map[string]time.Time),
	}
}

func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if !until.After(time.Now()) {
		return nil
	}
	m.revoked[tokenID] = until
	return nil
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return false, m.Err
	}
	until, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	return time.Now().Before(until), nil
}
