package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sitediary/internal/domain"
	"sitediary/internal/service"
)

const (
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"
)

// AuthMiddleware returns Gin middleware that validates the session token and
// injects the caller's identity. The session cookie wins over the
// Authorization header.
func AuthMiddleware(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing session"},
			})
			return
		}

		id, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired session"},
			})
			return
		}

		c.Set(ContextKeyIdentity, id)
		c.Next()
	}
}

// SessionToken returns the raw session token from the cookie or the
// Authorization header, or "" when neither carries one.
func SessionToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			if token := cleanToken(v); token != "" {
				return token
			}
		}
	}
	return cleanToken(c.GetHeader("Authorization"))
}

// cleanToken strips wrapping quotes and a Bearer prefix. Some clients store
// the token JSON-encoded, so quotes may appear on either side of the prefix.
func cleanToken(raw string) string {
	token := stripQuotes(strings.TrimSpace(raw))
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = stripQuotes(strings.TrimSpace(token[7:]))
	}
	return token
}

func stripQuotes(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

// RequireRole returns middleware that checks the caller's role against allowed roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := GetIdentity(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "role not found in context"},
			})
			return
		}

		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"code": "FORBIDDEN", "message": "insufficient permissions"},
		})
	}
}

// GetIdentity extracts the caller's identity from the Gin context.
func GetIdentity(c *gin.Context) (*service.Identity, error) {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	id, ok := val.(*service.Identity)
	if !ok || id == nil {
		return nil, domain.ErrUnauthorized
	}
	return id, nil
}

// SetIdentity stores id in the Gin context.
func SetIdentity(c *gin.Context, id *service.Identity) {
	c.Set(ContextKeyIdentity, id)
}
