package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDHeader is set by the authenticating gateway in front of this
// service; authentication itself lives there, not here.
const userIDHeader = "X-User-ID"

// IdentityMiddleware resolves the requesting user from the gateway header.
type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// RequireUser rejects requests without an identity and stashes the user ID
// in the request context for handlers.
func (m *IdentityMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetHeader(userIDHeader)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set("user_id", uid)
		c.Next()
	}
}
