package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireToken guards mutating endpoints with a static token from header OR
// query parameter. An empty configured token disables the guard, matching
// the open single-operator deployments this service usually runs as.
func RequireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		var supplied string

		// 1. Try Authorization header
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			supplied = strings.TrimPrefix(authHeader, "Bearer ")
		}

		// 2. Fallback to query parameter (e.g., ?token=abc123)
		if supplied == "" {
			supplied = c.Query("token")
		}

		if supplied == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
