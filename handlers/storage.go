package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fieldserve/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler serves file upload endpoints.
type StorageHandler struct {
	Service storage.StorageService
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{Service: svc}
}

// UploadFileHandler accepts a multipart file and uploads it to storage,
// returning the permanent public id.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	folder := c.DefaultPostForm("folder", "service-forms")

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s", filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		zap.L().Error("Failed to buffer upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	defer os.Remove(tmpPath)

	publicID, err := h.Service.UploadFile(c.Request.Context(), tmpPath, folder)
	if err != nil {
		zap.L().Error("Failed to upload file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "publicId": publicID})
}

// DownloadURLHandler resolves a stored public id to a browsable URL.
// Passing expiresIn (seconds) yields a signed short-lived URL instead of the
// public one.
func (h *StorageHandler) DownloadURLHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}

	var (
		url string
		err error
	)
	if raw := c.Query("expiresIn"); raw != "" {
		seconds, convErr := strconv.Atoi(raw)
		if convErr != nil || seconds <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiresIn must be a positive number of seconds"})
			return
		}
		url, err = h.Service.GetSecureDownloadURL(c.Request.Context(), publicID, time.Duration(seconds)*time.Second)
	} else {
		url, err = h.Service.GetDownloadURL(c.Request.Context(), publicID)
	}
	if err != nil {
		zap.L().Error("Failed to resolve download URL", zap.String("publicId", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// DeleteFileHandler removes an uploaded asset. The id comes from the query
// string because public ids contain slashes.
func (h *StorageHandler) DeleteFileHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}

	if err := h.Service.DeleteFile(c.Request.Context(), publicID); err != nil {
		zap.L().Error("Failed to delete file", zap.String("publicId", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
