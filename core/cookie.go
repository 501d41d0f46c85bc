package core

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Cookie names are fixed. The token cookie is HttpOnly; the CSRF cookie
// mirrors the token's csrf claim and must stay readable by the frontend.
const (
	accessCookieName = "access_token_cookie"
	csrfCookieName   = "csrf_access_token"
	csrfHeaderName   = "X-CSRF-Token"
)

// WriteSessionCookies sets the session token cookie and, when CSRF
// protection is enabled, the companion CSRF cookie.
func WriteSessionCookies(c *gin.Context, cfg Config, token string, claims Claims) {
	maxAge := int(accessTokenTTL.Seconds())
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     accessCookieName,
		Value:    token,
		Path:     cookiePath(cfg),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFromString(cfg.CookieSameSite),
	})
	if cfg.CSRFProtect {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     csrfCookieName,
			Value:    claims.CSRF,
			Path:     cookiePath(cfg),
			MaxAge:   maxAge,
			HttpOnly: false,
			Secure:   cfg.CookieSecure,
			SameSite: sameSiteFromString(cfg.CookieSameSite),
		})
	}
}

// ClearSessionCookies expires both cookies (logout). The token itself is
// not revoked; it simply leaves the client's cookie jar.
func ClearSessionCookies(c *gin.Context, cfg Config) {
	for _, name := range []string{accessCookieName, csrfCookieName} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     cookiePath(cfg),
			MaxAge:   -1,
			HttpOnly: name == accessCookieName,
			Secure:   cfg.CookieSecure,
			SameSite: sameSiteFromString(cfg.CookieSameSite),
		})
	}
}

// ReadSessionToken extracts the raw token string from the incoming
// request, if present.
func ReadSessionToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(accessCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func cookiePath(cfg Config) string {
	if cfg.CookiePath == "" {
		return "/"
	}
	return cfg.CookiePath
}

func sameSiteFromString(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
