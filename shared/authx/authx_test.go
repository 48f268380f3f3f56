package authx

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestParseRoles(t *testing.T) {
	claims := map[string]any{
		"roles": []any{"admin", "agronomist"},
		"scp":   "read write",
	}
	roles := parseRoles(claims)
	if len(roles) < 3 {
		t.Fatalf("expected roles to include entries, got %v", roles)
	}
}

func TestNewJWTVerifierValidation(t *testing.T) {
	if _, err := NewJWTVerifier("", "aud", "", 60, 0); err == nil {
		t.Fatalf("expected error for missing issuer")
	}
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", 1, 0)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	userID := uuid.New()
	token, err := issuer.Issue(userID, "farmer@example.com", "Farmer Jane", "farmer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	auth, err := issuer.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if auth.Subject != userID.String() {
		t.Fatalf("expected subject %s, got %s", userID, auth.Subject)
	}
	if auth.Email != "farmer@example.com" {
		t.Fatalf("unexpected email %q", auth.Email)
	}
	if len(auth.Roles) == 0 || auth.Roles[0] != "farmer" {
		t.Fatalf("expected farmer role, got %v", auth.Roles)
	}
}

func TestTokenIssuerRejectsGarbage(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", 1, 0)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if _, err := issuer.Verify(context.Background(), "not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestTokenIssuerWrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("secret-a", 1, 0)
	b, _ := NewTokenIssuer("secret-b", 1, 0)
	token, err := a.Issue(uuid.New(), "x@example.com", "X", "farmer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected verification failure across secrets")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatch for wrong password")
	}
}
