package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const emailContextKey = "sessionEmail"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// Middleware validates the bearer token and injects the session email into
// the request context.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(emailContextKey, claims.Email)
		c.Next()
	}
}

// EmailFromContext returns the session email set by Middleware.
func EmailFromContext(c *gin.Context) (string, bool) {
	value, ok := c.Get(emailContextKey)
	if !ok {
		return "", false
	}
	email, ok := value.(string)
	return email, ok && email != ""
}
