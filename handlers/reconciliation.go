package handlers

import (
	"net/http"

	"fieldserve/middleware"
	"fieldserve/services/reconciliation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReconciliationHandler serves the reconciliation report endpoints.
type ReconciliationHandler struct {
	Service reconciliation.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(svc reconciliation.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{Service: svc}
}

// TechnicianCallsHandler runs the full reconciliation aggregation for the
// requested window and optional technician.
func (h *ReconciliationHandler) TechnicianCallsHandler(c *gin.Context) {
	report, err := h.Service.TechnicianCalls(reconciliation.TechnicianCallsQuery{
		Month:    c.Query("month"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		TechID:   c.Query("techId"),
	})
	if err != nil {
		zap.L().Error("Reconciliation report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"technicians":          report.Technicians,
		"summary":              report.Summary,
		"calls":                report.Calls,
		"payments":             report.Payments,
		"monthSummaryByStatus": report.MonthSummaryByStatus,
	})
}

// CustomerPaymentsHandler classifies every call as Paid or Pending.
func (h *ReconciliationHandler) CustomerPaymentsHandler(c *gin.Context) {
	report, err := h.Service.CustomerPayments()
	if err != nil {
		zap.L().Error("Customer payments report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"totalCustomers": report.TotalCustomers,
		"paidCount":      report.PaidCount,
		"pendingCount":   report.PendingCount,
		"items":          report.Items,
	})
}

// PaymentCheckHandler returns the caller's own paid membership sets.
func (h *ReconciliationHandler) PaymentCheckHandler(c *gin.Context) {
	result, err := h.Service.PaymentCheck(middleware.AuthID(c))
	if err != nil {
		zap.L().Error("Payment check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"paidCallIds": result.PaidCallIDs,
		"paidKeys":    result.PaidKeys,
	})
}
