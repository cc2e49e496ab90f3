package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenValidator validates an access token and returns the principal it was
// issued for.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthMiddleware validates the Authorization header. The mobile client
// sends the raw token; a Bearer prefix is tolerated for other callers.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "missing authorization header"})
			c.Abort()
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		username, err := validator.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Next()
	}
}

// RequireOwnUser ensures the authenticated principal matches the user query
// parameter every collection endpoint is keyed by.
func RequireOwnUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.Query("user")
		if user == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "missing user parameter"})
			c.Abort()
			return
		}
		if user != c.GetString("username") {
			c.JSON(http.StatusForbidden, gin.H{"detail": "token does not match user"})
			c.Abort()
			return
		}
		c.Next()
	}
}
