package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"fieldserve/middleware"
	"fieldserve/services/storage"
	"fieldserve/services/technician"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TechnicianHandler serves technician account endpoints.
type TechnicianHandler struct {
	Service technician.TechnicianService
	Storage storage.StorageService
}

// NewTechnicianHandler creates a new TechnicianHandler.
func NewTechnicianHandler(svc technician.TechnicianService, store storage.StorageService) *TechnicianHandler {
	return &TechnicianHandler{Service: svc, Storage: store}
}

// CreateTechnicianHandler registers a technician account.
func (h *TechnicianHandler) CreateTechnicianHandler(c *gin.Context) {
	var req technician.CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.Create(req)
	if err != nil {
		if errors.Is(err, technician.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		zap.L().Error("Failed to create technician", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "technician": created})
}

// ListTechniciansHandler returns all technicians.
func (h *TechnicianHandler) ListTechniciansHandler(c *gin.Context) {
	techs, err := h.Service.GetAll()
	if err != nil {
		zap.L().Error("Failed to list technicians", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "technicians": techs})
}

// GetTechnicianHandler returns one technician by id.
func (h *TechnicianHandler) GetTechnicianHandler(c *gin.Context) {
	tech, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, technician.ErrTechnicianNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
			return
		}
		zap.L().Error("Failed to fetch technician", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "technician": tech})
}

// UpdateTechnicianHandler applies a partial admin edit.
func (h *TechnicianHandler) UpdateTechnicianHandler(c *gin.Context) {
	var req technician.UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, technician.ErrTechnicianNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
			return
		}
		zap.L().Error("Failed to update technician", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "technician": updated})
}

// DeleteTechnicianHandler removes a technician account. Historical calls
// and payments are kept.
func (h *TechnicianHandler) DeleteTechnicianHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, technician.ErrTechnicianNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
			return
		}
		zap.L().Error("Failed to delete technician", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type fcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateFCMTokenHandler registers the caller's push token.
func (h *TechnicianHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.Service.SetFCMToken(middleware.AuthID(c), req.Token); err != nil {
		zap.L().Error("Failed to set FCM token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateAvatarHandler uploads the caller's avatar image and stores its
// public id on the account. A previously stored avatar is removed from
// storage once the replacement is in place.
func (h *TechnicianHandler) UpdateAvatarHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	authID := middleware.AuthID(c)

	current, err := h.Service.GetByID(authID)
	if err != nil {
		zap.L().Error("Failed to fetch technician for avatar update", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("avatar-%s", filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		zap.L().Error("Failed to buffer avatar upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	defer os.Remove(tmpPath)

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tmpPath, "avatars")
	if err != nil {
		zap.L().Error("Failed to upload avatar", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	if err := h.Service.SetAvatar(authID, publicID); err != nil {
		zap.L().Error("Failed to set avatar", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	// Best effort: the new avatar is already live, a stale asset only wastes
	// storage.
	if old := current.Avatar; old != "" && old != publicID {
		if err := h.Storage.DeleteFile(c.Request.Context(), old); err != nil {
			zap.L().Warn("Failed to delete replaced avatar", zap.String("publicId", old), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "avatar": publicID})
}
