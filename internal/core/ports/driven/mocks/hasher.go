package mocks

// MockHasher is a Hasher for testing. It "hashes" by prefixing the
// plaintext, so tests can seed stores with predictable values without
// paying real hashing cost.
type MockHasher struct{}

// NewMockHasher creates a new MockHasher
func NewMockHasher() *MockHasher {
	return &MockHasher{}
}

const mockHashPrefix = "hashed:"

func (m *MockHasher) Hash(password string) (string, error) {
	return mockHashPrefix + password, nil
}

func (m *MockHasher) Verify(password, encoded string) bool {
	return encoded == mockHashPrefix+password
}

// HashFor returns the stored-hash form of a plaintext, for seeding
// test fixtures.
func (m *MockHasher) HashFor(password string) string {
	return mockHashPrefix + password
}
