package core

import (
	"errors"
	"time"
)

// User represents an authenticated principal returned to handlers.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

var (
	// ErrInvalidCredentials is returned when username/password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an already existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound is returned by repositories on lookup miss.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid session token")
)

// AuthService defines registration and authentication behaviour.
type AuthService interface {
	Register(username, password string) (User, error)
	Authenticate(username, password string) (User, error)
}
