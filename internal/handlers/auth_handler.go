package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	"github.com/BruksfildServices01/restaurant-reservations/internal/config"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/httpresp"
	"github.com/BruksfildServices01/restaurant-reservations/internal/logger"
	"github.com/BruksfildServices01/restaurant-reservations/internal/middleware"
	"github.com/BruksfildServices01/restaurant-reservations/internal/session"
)

type AuthHandler struct {
	config       *config.Config
	sessions     session.Store
	audit        *audit.Dispatcher
	passwordHash []byte
	now          func() time.Time
}

// NewAuthHandler prefers ADMIN_PASSWORD_HASH; a plain ADMIN_PASSWORD is
// hashed once here so both paths compare with bcrypt.
func NewAuthHandler(cfg *config.Config, sessions session.Store, audit *audit.Dispatcher) *AuthHandler {
	h := &AuthHandler{
		config:   cfg,
		sessions: sessions,
		audit:    audit,
		now:      time.Now,
	}

	switch {
	case cfg.AdminPasswordHash != "":
		h.passwordHash = []byte(cfg.AdminPasswordHash)
	case cfg.AdminPassword != "":
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			logger.GetLogger().Errorw("failed to hash admin password", "error", err)
			break
		}
		h.passwordHash = hashed
	default:
		logger.GetLogger().Warn("no admin password configured, staff login is disabled")
	}

	return h
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	username := strings.TrimSpace(req.Username)
	if !h.checkCredentials(username, req.Password) {
		h.audit.Dispatch(audit.Event{
			Actor:  username,
			Action: "login_failed",
			Entity: "session",
		})
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password")
		return
	}

	jti := uuid.NewString()
	expiresAt := h.now().Add(h.config.SessionTTL)

	token, err := h.generateToken(username, jti, expiresAt)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in")
		return
	}

	if err := h.sessions.Create(c.Request.Context(), session.Session{ID: jti, Username: username}, h.config.SessionTTL); err != nil {
		logger.GetLogger().Errorw("failed to create session", "error", err)
		httperr.Unavailable(c, "session_store_unavailable", "Could not sign in, please try again")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    username,
		Action:   "login",
		Entity:   "session",
		EntityID: jti,
	})

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"username":  username,
		"expiresAt": expiresAt.UTC(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextSessionID)

	if err := h.sessions.Revoke(c.Request.Context(), jti); err != nil {
		logger.GetLogger().Errorw("failed to revoke session", "error", err)
		httperr.Unavailable(c, "session_store_unavailable", "Could not sign out, please try again")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.AdminUsername(c),
		Action:   "logout",
		Entity:   "session",
		EntityID: jti,
	})

	httpresp.Message(c, "Logged out")
}

func (h *AuthHandler) checkCredentials(username, password string) bool {
	if len(h.passwordHash) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.config.AdminUsername)) == 1
	passOK := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(username, jti string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"jti": jti,
		"exp": expiresAt.Unix(),
		"iat": h.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
