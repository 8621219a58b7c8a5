package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/restaurant-reservations/internal/httperr"
	"github.com/BruksfildServices01/restaurant-reservations/internal/session"
)

const (
	ContextAdminUsername = "adminUsername"
	ContextSessionID     = "sessionID"
)

// AdminAuth accepts a Bearer token signed with secret whose jti still has a
// live session.
func AdminAuth(secret string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Authorization header must be a Bearer token.")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Invalid or expired token.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "Invalid token.")
			return
		}

		username, ok1 := claims["sub"].(string)
		jti, ok2 := claims["jti"].(string)
		if !ok1 || !ok2 || username == "" || jti == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Invalid token.")
			return
		}

		sess, err := sessions.Get(c.Request.Context(), jti)
		if err != nil || sess.Username != username {
			httperr.Abort(c, http.StatusUnauthorized, "session_expired", "Session expired. Please sign in again.")
			return
		}

		c.Set(ContextAdminUsername, username)
		c.Set(ContextSessionID, jti)

		c.Next()
	}
}

// AdminUsername returns the staff member behind the request, or "admin"
// outside AdminAuth.
func AdminUsername(c *gin.Context) string {
	if v := c.GetString(ContextAdminUsername); v != "" {
		return v
	}
	return "admin"
}
