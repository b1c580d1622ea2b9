package domain

import (
	"testing"
	"time"
)

func TestClaims_HasScope(t *testing.T) {
	claims := &Claims{
		Subject: "alice@example.com",
		Scopes:  []string{"read"},
	}

	if !claims.HasScope("read") {
		t.Error("expected claims to carry read scope")
	}
	if claims.HasScope("write") {
		t.Error("expected claims not to carry write scope")
	}
}

func TestClaims_IsExpired(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Minute),
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before expiry", now, false},
		{"just before expiry", now.Add(time.Minute - time.Nanosecond), false},
		{"at expiry", now.Add(time.Minute), true},
		{"after expiry", now.Add(2 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := claims.IsExpired(tt.at); got != tt.want {
				t.Errorf("IsExpired(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}
