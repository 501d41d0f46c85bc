package core

import (
	"strings"
	"testing"
)

func TestHashCheckPassword(t *testing.T) {
	t.Parallel()

	passwords := []string{
		"pw",
		"",
		"correct horse battery staple",
		strings.Repeat("x", 70),
	}

	for _, pw := range passwords {
		hash, err := HashPassword(pw)
		if err != nil {
			t.Fatalf("HashPassword(%q) error: %v", pw, err)
		}
		if hash == pw {
			t.Fatalf("hash must not equal the raw password")
		}
		if !CheckPassword(pw, hash) {
			t.Fatalf("CheckPassword(%q) = false for its own hash", pw)
		}
		if CheckPassword(pw+"-wrong", hash) {
			t.Fatalf("CheckPassword accepted a wrong password for %q", pw)
		}
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{"", "not-a-bcrypt-hash", "$2a$broken"} {
		if CheckPassword("anything", h) {
			t.Fatalf("CheckPassword accepted malformed hash %q", h)
		}
	}
}
