package core

import (
	"context"
	"errors"
	"strings"
	"time"
)

// dummyHash is compared against when a login names an unknown user, so the
// miss path costs one bcrypt verification like the hit path does.
var dummyHash, _ = HashPassword("ImUhQTCsLeiNyfDg")

// RepositoryAuthService implements AuthService over a UserRepository.
type RepositoryAuthService struct {
	users UserRepository
}

func NewRepositoryAuthService(users UserRepository) *RepositoryAuthService {
	return &RepositoryAuthService{users: users}
}

// Register stores a new user with a freshly computed password hash.
// Returns ErrUsernameTaken when the name is already claimed.
func (s *RepositoryAuthService) Register(username, password string) (User, error) {
	if strings.TrimSpace(username) == "" {
		return User{}, ErrInvalidCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return User{}, err
	}
	return User{ID: id, Username: username, CreatedAt: time.Now()}, nil
}

// Authenticate verifies a username/password pair against the store.
// Any failure collapses into ErrInvalidCredentials.
func (s *RepositoryAuthService) Authenticate(username, password string) (User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil || u == nil {
		if errors.Is(err, ErrUserNotFound) {
			CheckPassword(password, dummyHash)
		}
		return User{}, ErrInvalidCredentials
	}

	if !CheckPassword(password, u.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}, nil
}
