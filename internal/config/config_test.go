package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const testKey = "0123456789abcdef0123456789abcdef"

// load runs envconfig against a fixed map instead of the process env
func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"AUTH_SIGNING_KEY": testKey,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SigningAlg != "HS256" {
		t.Errorf("expected default HS256, got %s", cfg.SigningAlg)
	}
	if cfg.TokenTTL != 10*time.Minute {
		t.Errorf("expected default ttl 10m, got %s", cfg.TokenTTL)
	}
	if cfg.TokenMaxTTL != 24*time.Hour {
		t.Errorf("expected default max ttl 24h, got %s", cfg.TokenMaxTTL)
	}
	if cfg.ClockLeeway != 30*time.Second {
		t.Errorf("expected default leeway 30s, got %s", cfg.ClockLeeway)
	}
	if cfg.Hash.Algorithm != "argon2id" {
		t.Errorf("expected default argon2id, got %s", cfg.Hash.Algorithm)
	}
	if cfg.Hash.Argon2Memory != 65536 {
		t.Errorf("expected default argon2 memory 65536, got %d", cfg.Hash.Argon2Memory)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"AUTH_SIGNING_KEY":    testKey,
		"AUTH_SIGNING_ALG":    "HS512",
		"AUTH_TOKEN_TTL":      "5m",
		"AUTH_TOKEN_MAX_TTL":  "1h",
		"AUTH_HASH_ALGORITHM": "bcrypt",
		"AUTH_BCRYPT_COST":    "10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SigningAlg != "HS512" {
		t.Errorf("expected HS512, got %s", cfg.SigningAlg)
	}
	if cfg.TokenTTL != 5*time.Minute {
		t.Errorf("expected ttl 5m, got %s", cfg.TokenTTL)
	}
	if cfg.Hash.Algorithm != "bcrypt" || cfg.Hash.BcryptCost != 10 {
		t.Errorf("unexpected hash config: %+v", cfg.Hash)
	}
}

func TestLoad_FailsFast(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing signing key", map[string]string{}},
		{"short signing key", map[string]string{"AUTH_SIGNING_KEY": "too-short"}},
		{"unsupported signing alg", map[string]string{"AUTH_SIGNING_KEY": testKey, "AUTH_SIGNING_ALG": "none"}},
		{"ttl above max", map[string]string{"AUTH_SIGNING_KEY": testKey, "AUTH_TOKEN_TTL": "48h"}},
		{"zero ttl", map[string]string{"AUTH_SIGNING_KEY": testKey, "AUTH_TOKEN_TTL": "0s"}},
		{"unknown hash algorithm", map[string]string{"AUTH_SIGNING_KEY": testKey, "AUTH_HASH_ALGORITHM": "md5"}},
		{"zero hash workers", map[string]string{"AUTH_SIGNING_KEY": testKey, "AUTH_HASH_WORKERS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(t, tt.env); err == nil {
				t.Error("expected configuration to be rejected")
			}
		})
	}
}
