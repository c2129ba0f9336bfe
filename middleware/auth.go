package middleware

import (
	"net/http"
	"strings"

	"fieldserve/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxAuthID       = "authID"
	CtxAuthUsername = "authUsername"
	CtxAuthRole     = "authRole"
)

// JWTAuthMiddleware validates the bearer token and enforces the required
// role. A missing or invalid token is 401; a valid token with the wrong
// role is 403.
func JWTAuthMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := utils.IdentityFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if requiredRole != "" && identity.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		c.Set(CtxAuthID, identity.ID)
		c.Set(CtxAuthUsername, identity.Username)
		c.Set(CtxAuthRole, identity.Role)
		c.Next()
	}
}

// AuthID returns the authenticated principal's id from the context.
func AuthID(c *gin.Context) string {
	return c.GetString(CtxAuthID)
}
