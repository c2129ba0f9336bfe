package handlers

import (
	"errors"
	"net/http"

	"fieldserve/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves login for both roles.
type AuthHandler struct {
	Service auth.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginHandler authenticates a user and returns a signed token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and role are required"})
		return
	}

	resp, err := h.Service.Login(req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		zap.L().Error("Login failed", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "auth": resp})
}
