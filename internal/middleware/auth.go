// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

// RoleDirectory resolves the stored role for an email. The token's role claim
// is never trusted for authorization decisions; the directory is.
type RoleDirectory interface {
	RoleByEmail(email string) (models.Role, error)
}

// AuthRequired verifies the bearer token and stashes the claims in the
// context. A missing credential is 401; a credential that is present but
// fails verification is 403.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized access",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized access",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "forbidden access",
			})
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth stashes claims when a valid token is present and otherwise
// lets the request through anonymously. Visibility decisions downstream see
// an empty identity for anonymous callers.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireSelf rejects requests whose ?email= parameter names a different
// account than the verified token. Endpoints that scope data by email use
// this so a caller cannot read another user's rows.
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Query("email")
		claimed, _ := utils.GetEmailFromContext(c)
		if requested != "" && requested != claimed {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "forbidden access",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles resolves the caller's stored role from the directory and
// admits only the listed roles. An identity that cannot be resolved is 401;
// a resolved identity with the wrong role is 403.
func RequireRoles(directory RoleDirectory, roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		email, ok := utils.GetEmailFromContext(c)
		if !ok || email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized access",
			})
			c.Abort()
			return
		}

		role, err := directory.RoleByEmail(email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized access",
			})
			c.Abort()
			return
		}

		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "forbidden access",
			})
			c.Abort()
			return
		}

		c.Set("role", string(role))
		c.Next()
	}
}
