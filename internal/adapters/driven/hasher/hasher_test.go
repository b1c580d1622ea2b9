package hasher

import (
	"strings"
	"testing"
)

// Low-cost parameters so the suite stays fast.
func newTestAdapter(t *testing.T, alg Algorithm) *Adapter {
	t.Helper()
	a, err := New(Config{
		Algorithm:     alg,
		Argon2Time:    1,
		Argon2Memory:  8 * 1024,
		Argon2Threads: 1,
		BcryptCost:    4,
	})
	if err != nil {
		t.Fatalf("unexpected error creating adapter: %v", err)
	}
	return a
}

func TestAdapter_HashVerify_RoundTrip(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmArgon2id, AlgorithmBcrypt} {
		t.Run(string(alg), func(t *testing.T) {
			a := newTestAdapter(t, alg)

			hash, err := a.Hash("correct horse battery staple")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hash == "correct horse battery staple" {
				t.Fatal("hash must not equal the plaintext")
			}
			if !a.Verify("correct horse battery staple", hash) {
				t.Error("expected matching password to verify")
			}
			if a.Verify("wrong password", hash) {
				t.Error("expected non-matching password to fail")
			}
		})
	}
}

func TestAdapter_Hash_FreshSaltPerCall(t *testing.T) {
	a := newTestAdapter(t, AlgorithmArgon2id)

	h1, err := a.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := a.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password must differ (fresh salt per call)")
	}
	if !a.Verify("secret", h1) || !a.Verify("secret", h2) {
		t.Error("both hashes must verify")
	}
}

func TestAdapter_Hash_Argon2Format(t *testing.T) {
	a := newTestAdapter(t, AlgorithmArgon2id)

	hash, err := a.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Errorf("unexpected hash format: %s", hash)
	}
}

func TestAdapter_Verify_MixedStore(t *testing.T) {
	// An argon2id-configured adapter must still verify bcrypt hashes
	// migrated from the original deployment.
	bc := newTestAdapter(t, AlgorithmBcrypt)
	ar := newTestAdapter(t, AlgorithmArgon2id)

	bcryptHash, err := bc.Hash("legacy-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ar.Verify("legacy-password", bcryptHash) {
		t.Error("argon2id adapter should verify a bcrypt hash")
	}

	argonHash, err := ar.Hash("new-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bc.Verify("new-password", argonHash) {
		t.Error("bcrypt adapter should verify an argon2id hash")
	}
}

func TestAdapter_Verify_FailsClosed(t *testing.T) {
	a := newTestAdapter(t, AlgorithmArgon2id)

	malformed := []string{
		"",
		"not a hash at all",
		"$argon2id$",
		"$argon2id$v=19$m=8192,t=1,p=1$short",
		"$argon2id$v=19$m=8192,t=1,p=1$!!badsalt!!$!!baddigest!!",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$ZGlnZXN0",
		"$2x$not-really-bcrypt",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$ZGlnZXN0",
	}
	for _, h := range malformed {
		if a.Verify("anything", h) {
			t.Errorf("malformed stored hash %q must verify false", h)
		}
	}
}

func TestAdapter_Hash_BcryptLengthLimit(t *testing.T) {
	a := newTestAdapter(t, AlgorithmBcrypt)

	if _, err := a.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("expected error for password past bcrypt's 72 byte limit")
	}
	if _, err := a.Hash(strings.Repeat("x", 72)); err != nil {
		t.Errorf("unexpected error at the limit: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty defaults", Config{}, false},
		{"argon2id", Config{Algorithm: AlgorithmArgon2id}, false},
		{"bcrypt", Config{Algorithm: AlgorithmBcrypt, BcryptCost: 12}, false},
		{"unknown algorithm", Config{Algorithm: "scrypt"}, true},
		{"cost too low", Config{Algorithm: AlgorithmBcrypt, BcryptCost: 2}, true},
		{"cost too high", Config{Algorithm: AlgorithmBcrypt, BcryptCost: 42}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
