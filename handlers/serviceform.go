package handlers

import (
	"net/http"
	"time"

	serviceformRepo "fieldserve/database/repository/serviceform"
	"fieldserve/middleware"
	"fieldserve/services/serviceform"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceFormHandler serves completed-job form endpoints.
type ServiceFormHandler struct {
	Service serviceform.ServiceFormService
}

// NewServiceFormHandler creates a new ServiceFormHandler.
func NewServiceFormHandler(svc serviceform.ServiceFormService) *ServiceFormHandler {
	return &ServiceFormHandler{Service: svc}
}

// SubmitFormHandler records a service form; retried submissions append
// photos to the existing record.
func (h *ServiceFormHandler) SubmitFormHandler(c *gin.Context) {
	var req serviceform.SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, created, err := h.Service.Submit(middleware.AuthID(c), req)
	if err != nil {
		zap.L().Error("Failed to submit service form", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "form": form, "created": created})
}

// ListFormsHandler returns service forms matching the query filters.
func (h *ServiceFormHandler) ListFormsHandler(c *gin.Context) {
	filter := serviceformRepo.FormFilter{TechnicianID: c.Query("techId")}
	if from, err := time.Parse("2006-01-02", c.Query("dateFrom")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("dateTo")); err == nil {
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	forms, err := h.Service.List(filter)
	if err != nil {
		zap.L().Error("Failed to list service forms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "forms": forms})
}
