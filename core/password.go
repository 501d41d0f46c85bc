package core

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash from a raw password. The salt
// and cost parameters are embedded in the returned opaque string.
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether raw matches the stored hash. Malformed
// hash input is treated as a mismatch, never an error.
func CheckPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
