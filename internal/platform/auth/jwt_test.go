package auth

import (
	"errors"
	"testing"
	"time"

	"securepay/internal/platform/config"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Minute})

	token, err := svc.GenerateAccessToken("ops", ScopeNotificationsRead)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("Expected subject ops, got %s", claims.Subject)
	}
	if !claims.HasScope(ScopeNotificationsRead) {
		t.Errorf("Expected scope %s, got %v", ScopeNotificationsRead, claims.Scopes)
	}
	if claims.HasScope("payments:write") {
		t.Error("Unexpected scope payments:write")
	}
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Minute})
	other := NewTokenService(config.JWTConfig{Secret: "other-secret", AccessTokenTTL: time.Minute})
	expired := NewTokenService(config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute})

	foreign, _ := other.GenerateAccessToken("ops")
	if _, err := svc.ValidateToken(foreign); err == nil {
		t.Error("Expected error for token signed with another secret")
	}

	old, _ := expired.GenerateAccessToken("ops")
	if _, err := svc.ValidateToken(old); err == nil {
		t.Error("Expected error for expired token")
	}

	if _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Error("Expected error for garbage token")
	}
}

func TestTokenService_MissingSecret(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{})

	if _, err := svc.GenerateAccessToken("ops"); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Expected ErrMissingSecret, got %v", err)
	}
	if _, err := svc.ValidateToken("anything"); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Expected ErrMissingSecret, got %v", err)
	}
}
