// Package hasher provides the password hashing adapters: argon2id
// (default) and bcrypt (for hashes migrated from older deployments).
// Verification dispatches on the stored value's format, so a store may
// hold a mix of both during a migration.
package hasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/resumekit/authcore/internal/core/ports/driven"
)

// Algorithm selects the hashing algorithm for newly created hashes.
type Algorithm string

const (
	AlgorithmArgon2id Algorithm = "argon2id"
	AlgorithmBcrypt   Algorithm = "bcrypt"
)

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// Config holds the tunable cost parameters. Defaults are calibrated so
// a single hash takes on the order of 100ms on commodity hardware.
type Config struct {
	Algorithm Algorithm

	// Argon2id parameters
	Argon2Time    uint32
	Argon2Memory  uint32 // KiB
	Argon2Threads uint8

	// Bcrypt cost (4..31)
	BcryptCost int
}

// applyDefaults fills in zero-value fields.
func (c *Config) applyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmArgon2id
	}
	if c.Argon2Time == 0 {
		c.Argon2Time = 1
	}
	if c.Argon2Memory == 0 {
		c.Argon2Memory = 64 * 1024
	}
	if c.Argon2Threads == 0 {
		c.Argon2Threads = 4
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Algorithm {
	case "", AlgorithmArgon2id, AlgorithmBcrypt:
	default:
		return fmt.Errorf("unsupported hash algorithm: %s", c.Algorithm)
	}
	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}

// Ensure Adapter implements Hasher
var _ driven.Hasher = (*Adapter)(nil)

// Adapter hashes passwords with the configured algorithm and verifies
// against either format.
type Adapter struct {
	cfg Config
}

// New creates a hasher adapter from config.
func New(cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Adapter{cfg: cfg}, nil
}

// Hash derives a salted hash from a plaintext password with a fresh
// random salt per call.
func (a *Adapter) Hash(password string) (string, error) {
	switch a.cfg.Algorithm {
	case AlgorithmBcrypt:
		return a.hashBcrypt(password)
	default:
		return a.hashArgon2(password)
	}
}

// Verify recomputes the hash from the parameters embedded in the stored
// value and compares in constant time. Any malformed stored value
// verifies false.
func (a *Adapter) Verify(password, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2(password, encoded)
	case strings.HasPrefix(encoded, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	default:
		return false
	}
}

func (a *Adapter) hashBcrypt(password string) (string, error) {
	// bcrypt silently truncates past 72 bytes; refuse instead
	if len(password) > 72 {
		return "", fmt.Errorf("password exceeds bcrypt's 72 byte limit")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

func (a *Adapter) hashArgon2(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey(
		[]byte(password), salt,
		a.cfg.Argon2Time, a.cfg.Argon2Memory, a.cfg.Argon2Threads,
		argon2KeyLen,
	)

	// PHC string format: $argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$DIGEST
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.cfg.Argon2Memory, a.cfg.Argon2Time, a.cfg.Argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

func verifyArgon2(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if memory == 0 || time == 0 || threads == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
