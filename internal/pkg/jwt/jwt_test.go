package jwt

import (
	"errors"
	"testing"
	"time"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "companyhub"
	testAudience = "companyhub-api"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := Generate("user-123", "alice@example.com", []string{"User", "Admin"},
		testSecret, testIssuer, testAudience, time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := Validate(token, testSecret, testIssuer, testAudience)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "alice@example.com")
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("Roles = %v, want 2 entries", claims.Roles)
	}
	if claims.ID == "" {
		t.Error("expected a token ID (jti)")
	}
}

func TestGenerateEmptySecret(t *testing.T) {
	_, err := Generate("user-123", "alice@example.com", nil, "", testIssuer, testAudience, time.Hour)
	if !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := Generate("user-123", "alice@example.com", nil, testSecret, testIssuer, testAudience, time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := Validate(token, "another-secret", testIssuer, testAudience); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := Generate("user-123", "alice@example.com", nil, testSecret, testIssuer, testAudience, -time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := Validate(token, testSecret, testIssuer, testAudience); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateWrongAudience(t *testing.T) {
	token, err := Generate("user-123", "alice@example.com", nil, testSecret, testIssuer, "other-audience", time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := Validate(token, testSecret, testIssuer, testAudience); err == nil {
		t.Fatal("expected validation to fail with wrong audience")
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := Validate("not-a-token", testSecret, testIssuer, testAudience); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}

func TestHasRole(t *testing.T) {
	claims := &Claims{Roles: []string{"User", "Admin"}}
	if !claims.HasRole("Admin") {
		t.Error("expected HasRole(Admin) to be true")
	}
	if claims.HasRole("Officer") {
		t.Error("expected HasRole(Officer) to be false")
	}
}
