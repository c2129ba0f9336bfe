package middleware

import (
	"fieldserve/models"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware restricts the route group to admin tokens.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware(models.RoleAdmin)
}

// JWTAuthTechnicianMiddleware restricts the route group to technician tokens.
func JWTAuthTechnicianMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware(models.RoleTechnician)
}

// JWTAuthAnyMiddleware accepts any authenticated role.
func JWTAuthAnyMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware("")
}
