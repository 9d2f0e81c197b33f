package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextUserKey = "auth_user_id"

// Middleware returns a Gin middleware that requires a valid bearer token and
// stores the authenticated user ID in the request context.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authorization header must be a bearer token"})
			return
		}

		userID, err := service.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": ErrInvalidToken.Error()})
			return
		}

		c.Set(contextUserKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user ID set by Middleware. The boolean is
// false on routes that did not pass through it.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
