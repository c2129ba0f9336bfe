package reconciliation

import (
	callRepo "fieldserve/database/repository/call"
	paymentRepo "fieldserve/database/repository/payment"
	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/models"

	"github.com/go-redis/redis/v8"
)

// TechnicianCallsQuery carries the raw query inputs of the technician-calls
// endpoint. Month is used only when both explicit dates are absent.
type TechnicianCallsQuery struct {
	Month    string
	DateFrom string
	DateTo   string
	TechID   string
}

// ReconciliationService computes payment/call reconciliation reports.
type ReconciliationService interface {
	TechnicianCalls(q TechnicianCallsQuery) (*models.TechnicianCallsReport, error)
	CustomerPayments() (*models.CustomerPaymentsReport, error)
	PaymentCheck(techID string) (*models.PaymentCheckResult, error)
}

// DefaultReconciliationService is the production implementation.
type DefaultReconciliationService struct {
	Calls       callRepo.CallRepository
	Payments    paymentRepo.PaymentRepository
	Technicians technicianRepo.TechnicianRepository

	// Cache is optional; when set, technician-calls reports are cached
	// briefly to absorb dashboard refresh bursts.
	Cache *redis.Client
}
