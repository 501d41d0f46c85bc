package core

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ctxKeyClaims = "session_claims"
	ctxKeyUser   = "current_user"
)

// UserLookupFunc resolves a verified token subject to a stored user
// record. Passed to the capability gate as an explicit dependency.
type UserLookupFunc func(ctx context.Context, username string) (*UserRecord, error)

// TokenRefreshMiddleware silently renews session tokens that are close to
// expiry. It runs on every route: requests without a valid token are
// simply passed through untouched. The verified claims are stashed in the
// context so the capability gate does not have to parse twice.
//
// Renewal happens at request ingress rather than after the handler
// because gin streams responses; the decision depends only on the inbound
// token, so the behaviour is the same.
func TokenRefreshMiddleware(cfg Config, issuer *TokenIssuer, metrics *MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := ReadSessionToken(c.Request)
		if !ok {
			c.Next()
			return
		}

		claims, err := issuer.Verify(raw)
		if err != nil {
			// Invalid token is not an error at this layer; no renewal.
			c.Next()
			return
		}
		c.Set(ctxKeyClaims, claims)

		if issuer.ShouldReissue(claims) {
			token, fresh, err := issuer.Issue(claims.Subject)
			if err != nil {
				log.Printf("token reissue failed for %s: %v", claims.Subject, err)
			} else {
				WriteSessionCookies(c, cfg, token, fresh)
				metrics.Incr(c.Request.Context(), CounterTokenRenewed)
			}
		}

		c.Next()
	}
}

// AuthRequired is the capability gate: it rejects requests lacking a
// valid session token before the handler runs. On success the resolved
// user is stored in the context for CurrentUser.
func AuthRequired(cfg Config, issuer *TokenIssuer, lookup UserLookupFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			raw, present := ReadSessionToken(c.Request)
			if !present {
				unauthenticated(c)
				return
			}
			var err error
			claims, err = issuer.Verify(raw)
			if err != nil {
				unauthenticated(c)
				return
			}
		}

		if cfg.CSRFProtect && !isSafeMethod(c.Request.Method) {
			header := c.GetHeader(csrfHeaderName)
			if header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(claims.CSRF)) != 1 {
				unauthenticated(c)
				return
			}
		}

		u, err := lookup(c.Request.Context(), claims.Subject)
		if err != nil || u == nil {
			unauthenticated(c)
			return
		}

		c.Set(ctxKeyUser, User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
		c.Next()
	}
}

// CurrentUser returns the identity resolved by AuthRequired.
func CurrentUser(c *gin.Context) (User, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}

func claimsFromContext(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(ctxKeyClaims)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}

func unauthenticated(c *gin.Context) {
	respondMsg(c, http.StatusUnauthorized, "Missing or invalid session token")
	c.Abort()
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
