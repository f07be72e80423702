package auth

import (
	"testing"
	"time"
)

func TestTokenRoundtrip(t *testing.T) {
	tok, err := MakeToken("operator", "test-secret", time.Minute)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := ParseToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Operator != "operator" {
		t.Errorf("operator = %q", claims.Operator)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := MakeToken("operator", "test-secret", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(tok, "other-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	tok, err := MakeToken("operator", "test-secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(tok, "test-secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("valid password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("invalid password accepted")
	}
}
