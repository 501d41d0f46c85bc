package core

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// accessTokenTTL is the fixed lifetime of every issued session token.
	accessTokenTTL = time.Hour
	// reissueWindow is the silent-renewal policy: a valid token with less
	// than this much lifetime left gets transparently replaced.
	reissueWindow = 30 * time.Minute
)

// Claims are the decoded fields of a verified session token.
type Claims struct {
	jwt.RegisteredClaims
	CSRF string `json:"csrf,omitempty"`
}

// TokenIssuer creates and verifies signed session tokens bound to a
// username. Stateless: validity is fully determined by signature and
// expiry, nothing is stored server-side.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer builds an issuer around a process-wide secret. The clock
// defaults to time.Now; tests inject a fixed one via WithClock.
func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret, now: time.Now}
}

// WithClock returns a copy of the issuer using the given clock.
func (ti *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	return &TokenIssuer{secret: ti.secret, now: now}
}

// Issue produces a signed token for subject with a fresh 1 hour TTL and a
// random CSRF claim.
func (ti *TokenIssuer) Issue(subject string) (string, Claims, error) {
	csrf, err := randomToken(32)
	if err != nil {
		return "", Claims{}, err
	}

	now := ti.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
		CSRF: csrf,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

// Verify decodes raw and returns its claims. Bad signature, expiry,
// malformed input and non-HMAC algorithms all map to ErrInvalidToken.
func (ti *TokenIssuer) Verify(raw string) (Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}

// ShouldReissue reports whether a verified token is close enough to
// expiry that the renewal middleware should mint a replacement.
func (ti *TokenIssuer) ShouldReissue(claims Claims) bool {
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Sub(ti.now()) < reissueWindow
}

// NewRandomSecret returns a fresh 32-byte signing key. Tokens signed with
// it die with the process: a restart silently invalidates them all.
func NewRandomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
