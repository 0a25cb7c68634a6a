package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/focodev/site/backend/internal/api/response"
	"github.com/focodev/site/backend/internal/services"
)

const (
	SessionCookieName = "session_token"
	sessionKey        = "session"
)

// SessionResolver verifies a raw session token.
type SessionResolver interface {
	Resolve(token string) services.Session
}

// SessionGate resolves the caller's session once per request and stores it
// in the gin context. It never rejects a request on its own.
func SessionGate(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := services.Session{}
		if resolver != nil {
			session = resolver.Resolve(SessionToken(c))
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionToken reads the token from the session cookie, falling back to an
// Authorization: Bearer header.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetSession returns the session stored by SessionGate. A request that
// never passed the gate is Unauthenticated.
func GetSession(c *gin.Context) services.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(services.Session); ok {
			return s
		}
	}
	return services.Session{}
}

// RequireAuth rejects unauthenticated callers with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).IsAuthenticated() {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects unauthenticated callers with 401 and authenticated
// non-admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		switch {
		case !session.IsAuthenticated():
			response.Abort(c, http.StatusUnauthorized, "Unauthorized")
		case !session.IsAdmin():
			response.Abort(c, http.StatusForbidden, "Forbidden")
		default:
			c.Next()
		}
	}
}
