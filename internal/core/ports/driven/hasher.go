package driven

// Hasher handles one-way password hashing.
// This does NOT handle storage - use CredentialStore for persistence.
type Hasher interface {
	// Hash derives a salted hash from a plaintext password. Each call
	// generates a fresh random salt.
	Hash(password string) (string, error)

	// Verify recomputes the hash using the salt and cost embedded in
	// the stored value and compares in constant time. Fails closed: a
	// malformed stored value verifies false, never panics.
	Verify(password, encoded string) bool
}
