package utils

import (
	"testing"
	"time"

	"fieldserve/config"
)

func TestTokenSignedWithConfiguredSecret(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "secret-a"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	token, err := GenerateToken("t1", "ravi", "technician", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	id, err := IdentityFromToken(token)
	if err != nil {
		t.Fatalf("expected token to validate: %v", err)
	}
	if id.ID != "t1" || id.Username != "ravi" || id.Role != "technician" {
		t.Fatalf("unexpected identity %+v", id)
	}

	config.AppConfig.JWTSecret = "secret-b"
	if _, err := IdentityFromToken(token); err == nil {
		t.Fatal("expected validation to fail after secret rotation")
	}
}

func TestSecretKeyFallback(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = ""
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	t.Setenv("JWT_SECRET", "env-secret")
	if got := string(secretKey()); got != "env-secret" {
		t.Fatalf("expected environment secret, got %q", got)
	}

	t.Setenv("JWT_SECRET", "")
	if got := string(secretKey()); got != "fieldserve-dev" {
		t.Fatalf("expected dev default, got %q", got)
	}
}
