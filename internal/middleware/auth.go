// ================== internal/middleware/auth.go ==================
package middleware

import (
	"strings"

	"github.com/xyz-asif/moderation/internal/pkg/jwt"
	"github.com/xyz-asif/moderation/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)

// Auth verifies the bearer token and stores the acting user in the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and raw token in header
		fields := strings.Fields(authHeader)
		var tokenString string
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		} else {
			tokenString = authHeader
		}

		claims, err := jwt.ValidateToken(tokenString, secret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		role := claims.Role
		if role == "" {
			role = jwt.RoleUser
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// RequireRole must run after Auth. Any of roles is accepted.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// ActingUser returns the authenticated user ID.
func ActingUser(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
