package core

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := NewRepositoryAuthService(NewMemoryUserRepository())

	if _, err := svc.Register("alice", "pw"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if _, err := svc.Register("alice", "other-pw"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("second Register: expected ErrUsernameTaken, got %v", err)
	}
	// Exact-match only: a differently cased name is a different user.
	if _, err := svc.Register("Alice", "pw"); err != nil {
		t.Fatalf("Register with different case error: %v", err)
	}
}

func TestRegister_BlankUsername(t *testing.T) {
	t.Parallel()

	svc := NewRepositoryAuthService(NewMemoryUserRepository())
	for _, name := range []string{"", "   "} {
		if _, err := svc.Register(name, "pw"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Register(%q): expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	t.Parallel()

	svc := NewRepositoryAuthService(NewMemoryUserRepository())

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register("race", fmt.Sprintf("pw-%d", i))
		}(i)
	}
	wg.Wait()

	wins := 0
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrUsernameTaken):
		default:
			t.Fatalf("attempt %d: unexpected error %v", i, err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", wins)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc := NewRepositoryAuthService(NewMemoryUserRepository())
	if _, err := svc.Register("bob", "secret"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	u, err := svc.Authenticate("bob", "secret")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if u.Username != "bob" {
		t.Fatalf("username mismatch: got %q", u.Username)
	}

	if _, err := svc.Authenticate("bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credentials: expected ErrInvalidCredentials, got %v", err)
	}
}
