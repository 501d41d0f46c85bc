package core

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, issuer *TokenIssuer, authService AuthService, users UserRepository, metrics *MetricsService) *gin.Engine {
	startedAt := time.Now()
	r := gin.Default()

	// Silent renewal runs on every route, authenticated or not.
	r.Use(TokenRefreshMiddleware(cfg, issuer, metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/register", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondMsg(c, http.StatusBadRequest, "invalid json")
			return
		}

		if _, err := authService.Register(req.Username, req.Password); err != nil {
			switch {
			case errors.Is(err, ErrUsernameTaken):
				respondMessage(c, http.StatusBadRequest, "User already exists")
			case errors.Is(err, ErrInvalidCredentials):
				respondMessage(c, http.StatusBadRequest, "Username is required")
			default:
				respondMessage(c, http.StatusInternalServerError, "registration failed")
			}
			return
		}

		metrics.Incr(c.Request.Context(), CounterUserRegistered)
		respondMessage(c, http.StatusCreated, "User created successfully")
	})

	r.POST("/login", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondMsg(c, http.StatusBadRequest, "invalid json")
			return
		}

		user, err := authService.Authenticate(req.Username, req.Password)
		if err != nil {
			metrics.Incr(c.Request.Context(), CounterLoginFailed)
			respondMsg(c, http.StatusUnauthorized, "Bad username or password")
			return
		}

		token, claims, err := issuer.Issue(user.Username)
		if err != nil {
			respondMsg(c, http.StatusInternalServerError, "failed to issue session token")
			return
		}

		WriteSessionCookies(c, cfg, token, claims)
		metrics.Incr(c.Request.Context(), CounterLoginSuccess)
		respondMsg(c, http.StatusOK, "login successful")
	})

	r.POST("/logout", func(c *gin.Context) {
		ClearSessionCookies(c, cfg)
		metrics.Incr(c.Request.Context(), CounterLogout)
		respondMsg(c, http.StatusOK, "logout successful")
	})

	r.GET("/protected", AuthRequired(cfg, issuer, users.FindByUsername), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			respondMsg(c, http.StatusUnauthorized, "Missing or invalid session token")
			return
		}
		c.JSON(http.StatusOK, gin.H{"logged_in_as": user.Username})
	})

	r.GET("/api/status", func(c *gin.Context) {
		st, err := CollectSystemStatus(c.Request.Context(), metrics, users, startedAt)
		if err != nil {
			respondMsg(c, http.StatusInternalServerError, "failed to collect status")
			return
		}
		c.JSON(http.StatusOK, st)
	})

	return r
}
