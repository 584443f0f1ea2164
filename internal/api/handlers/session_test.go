package handlers

import (
	"testing"

	"github.com/nineball/backend/internal/config"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", SessionTokenTTLHours: 1}

	token, err := signSessionToken("s_abc123", cfg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	id, err := parseSessionToken(token, cfg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "s_abc123" {
		t.Errorf("session_id = %q, want %q", id, "s_abc123")
	}
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", SessionTokenTTLHours: 1}
	other := &config.Config{JWTSecret: "different-secret", SessionTokenTTLHours: 1}

	token, err := signSessionToken("s_abc123", cfg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := parseSessionToken(token, other); err == nil {
		t.Error("token accepted with wrong secret")
	}
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	if _, err := parseSessionToken("not-a-jwt", cfg); err == nil {
		t.Error("garbage token accepted")
	}
}
