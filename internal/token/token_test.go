package token

import (
	"testing"
	"time"

	"expensetracker/internal/core"
)

func TestNewAndParse(t *testing.T) {
	secret := []byte("test-secret")
	user := core.User{ID: 42, Role: core.RoleAdmin}

	signed, err := New(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := Parse(signed, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected uid 42, got %d", claims.UserID)
	}
	if claims.Role != core.RoleAdmin {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := New(core.User{ID: 1, Role: core.RoleUser}, []byte("right"), time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := Parse(signed, []byte("wrong")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	signed, err := New(core.User{ID: 1, Role: core.RoleUser}, secret, -time.Minute)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := Parse(signed, secret); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-a-token", []byte("secret")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
