package handlers

import (
	"errors"
	"net/http"
	"time"

	paymentRepo "fieldserve/database/repository/payment"
	"fieldserve/middleware"
	"fieldserve/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves payment record endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// SubmitPaymentHandler records a technician payment submission.
func (h *PaymentHandler) SubmitPaymentHandler(c *gin.Context) {
	var req payment.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.Submit(middleware.AuthID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrDuplicatePayment):
			c.JSON(http.StatusConflict, gin.H{"error": "Identical payment already submitted today"})
		case errors.Is(err, payment.ErrInvalidMode):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Failed to submit payment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": created})
}

// ListPaymentsHandler returns payments matching the query filters.
func (h *PaymentHandler) ListPaymentsHandler(c *gin.Context) {
	filter := paymentRepo.PaymentFilter{TechnicianID: c.Query("techId")}
	if from, err := time.Parse("2006-01-02", c.Query("dateFrom")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("dateTo")); err == nil {
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	payments, err := h.Service.List(filter)
	if err != nil {
		zap.L().Error("Failed to list payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

// DeletePaymentHandler removes a payment record.
func (h *PaymentHandler) DeletePaymentHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		zap.L().Error("Failed to delete payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
