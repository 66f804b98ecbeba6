package token

import (
	"testing"
	"time"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := New([]byte("test-secret"), 24*time.Hour)

	signed, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id: got %d, want 42", userID)
	}
}

func TestIssuer_ExpiredToken(t *testing.T) {
	issuer := New([]byte("test-secret"), 24*time.Hour)
	issuer.TTL = -time.Hour

	signed, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Verify(signed); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestIssuer_WrongSecret(t *testing.T) {
	signed, err := New([]byte("secret-a"), time.Hour).Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := New([]byte("secret-b"), time.Hour).Verify(signed); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestIssuer_Malformed(t *testing.T) {
	issuer := New([]byte("test-secret"), time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(tok); err != ErrInvalidToken {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestNew_DefaultTTL(t *testing.T) {
	issuer := New([]byte("x"), 0)
	if issuer.TTL != 24*time.Hour {
		t.Errorf("default TTL: got %v, want 24h", issuer.TTL)
	}
}
