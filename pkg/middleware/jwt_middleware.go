package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderwise/pkg/utils"
)

const (
	SessionHeader = "X-Client-Session"

	ownerKey   = "owner_id"
	sessionKey = "session_id"

	maxSessionLength = 128
)

func OwnerID(c *gin.Context) string   { return c.GetString(ownerKey) }
func SessionID(c *gin.Context) string { return c.GetString(sessionKey) }

// SessionMiddleware records the browser session id, if any. Requests without
// one still work but opt out of last-request-wins.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := strings.TrimSpace(c.GetHeader(SessionHeader))
		if len(session) > maxSessionLength {
			session = session[:maxSessionLength]
		}
		if session != "" {
			c.Set(sessionKey, session)
		}
		c.Next()
	}
}

// JWTAuthMiddleware makes the token subject the owner of saved searches.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ownerKey, claims.Subject)
		c.Next()
	}
}

// SessionOwnerMiddleware is used when no JWT secret is configured: the
// session id doubles as the owner.
func SessionOwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionID(c)
		if session == "" {
			utils.RespondError(c, http.StatusBadRequest, SessionHeader+" header is required")
			c.Abort()
			return
		}
		c.Set(ownerKey, session)
		c.Next()
	}
}

// OwnerMiddleware picks JWT or session ownership depending on whether secret is set.
func OwnerMiddleware(secret string) gin.HandlerFunc {
	if secret == "" {
		return SessionOwnerMiddleware()
	}
	return JWTAuthMiddleware([]byte(secret))
}
