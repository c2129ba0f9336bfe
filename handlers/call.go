package handlers

import (
	"errors"
	"net/http"
	"time"

	callRepo "fieldserve/database/repository/call"
	"fieldserve/middleware"
	"fieldserve/models"
	"fieldserve/services/call"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallHandler serves call lifecycle endpoints.
type CallHandler struct {
	Service call.CallService
}

// NewCallHandler creates a new CallHandler.
func NewCallHandler(svc call.CallService) *CallHandler {
	return &CallHandler{Service: svc}
}

// ForwardCallHandler creates a call assigned to a technician.
func (h *CallHandler) ForwardCallHandler(c *gin.Context) {
	var req call.ForwardCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.Forward(req)
	if err != nil {
		if errors.Is(err, call.ErrTechnicianNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
			return
		}
		zap.L().Error("Failed to forward call", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "call": created})
}

// ListCallsHandler returns calls matching the query filters.
func (h *CallHandler) ListCallsHandler(c *gin.Context) {
	filter := callRepo.CallFilter{
		Status:       models.CallStatus(c.Query("status")),
		TechnicianID: c.Query("techId"),
	}
	if from, err := time.Parse("2006-01-02", c.Query("dateFrom")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("dateTo")); err == nil {
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	calls, err := h.Service.List(filter)
	if err != nil {
		zap.L().Error("Failed to list calls", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "calls": calls})
}

// GetCallHandler returns one call by id.
func (h *CallHandler) GetCallHandler(c *gin.Context) {
	found, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, call.ErrCallNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
			return
		}
		zap.L().Error("Failed to fetch call", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "call": found})
}

// UpdateCallHandler applies a partial admin edit.
func (h *CallHandler) UpdateCallHandler(c *gin.Context) {
	var req call.UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	force := c.Query("force") == "true"

	updated, err := h.Service.AdminUpdate(c.Param("id"), req, force)
	if err != nil {
		switch {
		case errors.Is(err, call.ErrCallNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
		case errors.Is(err, call.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Failed to update call", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "call": updated})
}

type statusUpdateRequest struct {
	Status models.CallStatus `json:"status" binding:"required"`
}

// UpdateCallStatusHandler is the technician-owned transition path.
func (h *CallHandler) UpdateCallStatusHandler(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	updated, err := h.Service.UpdateStatus(c.Param("id"), middleware.AuthID(c), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, call.ErrCallNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
		case errors.Is(err, call.ErrNotAssigned):
			c.JSON(http.StatusForbidden, gin.H{"error": "Call not assigned to this technician"})
		case errors.Is(err, call.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Failed to update call status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "call": updated})
}

type reassignRequest struct {
	TechnicianID string `json:"technicianId" binding:"required"`
}

// ReassignCallHandler moves a call to another technician.
func (h *CallHandler) ReassignCallHandler(c *gin.Context) {
	var req reassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "technicianId is required"})
		return
	}

	updated, err := h.Service.Reassign(c.Param("id"), req.TechnicianID)
	if err != nil {
		switch {
		case errors.Is(err, call.ErrCallNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
		case errors.Is(err, call.ErrTechnicianNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Technician not found"})
		default:
			zap.L().Error("Failed to reassign call", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "call": updated})
}

// DeleteCallHandler removes a call.
func (h *CallHandler) DeleteCallHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, call.ErrCallNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
			return
		}
		zap.L().Error("Failed to delete call", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
