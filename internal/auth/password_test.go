package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost) // min cost keeps the test fast

	hash, err := h.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !h.Verify("pw123456", hash) {
		t.Error("correct password should verify")
	}
	if h.Verify("pw1234567", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	h1, err := h.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should differ (salt)")
	}
	if !h.Verify("pw123456", h1) || !h.Verify("pw123456", h2) {
		t.Error("both salted hashes should verify against the original")
	}
}

// Every non-empty password round-trips, length is not the hasher's concern.
func TestHashAcceptsAnyNonEmptyPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, pw := range []string{"x", "pw1", "short", strings.Repeat("p", 72)} {
		hash, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash(%q): %v", pw, err)
		}
		if !h.Verify(pw, hash) {
			t.Errorf("Hash(%q) did not verify against its own output", pw)
		}
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	// bcrypt silently truncates nothing; beyond 72 bytes it errors.
	if _, err := h.Hash(strings.Repeat("p", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	// A garbage stored hash must verify false, never panic or succeed.
	if h.Verify("pw123456", "not-a-bcrypt-hash") {
		t.Error("malformed hash should not verify")
	}
	if h.Verify("pw123456", "") {
		t.Error("empty hash should not verify")
	}
}

func TestCostFallback(t *testing.T) {
	h := NewPasswordHasher(99)
	if h.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want default %d", h.cost, bcrypt.DefaultCost)
	}
}
