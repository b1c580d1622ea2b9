package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/resumekit/authcore/internal/core/domain"
)

// MockCredentialStore is an in-memory CredentialStore for testing
type MockCredentialStore struct {
	mu         sync.RWMutex
	identities map[string]*domain.Identity

	// LookupErr, when set, is returned by every Lookup call. Used to
	// simulate storage outages.
	LookupErr error
}

// NewMockCredentialStore creates a new MockCredentialStore
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{
		identities: make(map[string]*domain.Identity),
	}
}

func (m *MockCredentialStore) Lookup(ctx context.Context, identifier string) (*domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	identity, ok := m.identities[identifier]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *identity
	return &cp, nil
}

func (m *MockCredentialStore) Create(ctx context.Context, identity *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.identities[identity.Identifier]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *identity
	m.identities[identity.Identifier] = &cp
	return nil
}

func (m *MockCredentialStore) UpdateHash(ctx context.Context, identifier, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.identities[identifier]
	if !ok {
		return domain.ErrNotFound
	}
	identity.PasswordHash = newHash
	identity.UpdatedAt = time.Now()
	return nil
}

func (m *MockCredentialStore) Disable(ctx context.Context, identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.identities[identifier]
	if !ok {
		return domain.ErrNotFound
	}
	identity.Active = false
	identity.UpdatedAt = time.Now()
	return nil
}
