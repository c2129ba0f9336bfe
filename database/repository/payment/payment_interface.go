package paymentRepo

import (
	"time"

	"fieldserve/models"
)

// PaymentFilter narrows payment list queries.
type PaymentFilter struct {
	TechnicianID string
	From         *time.Time
	To           *time.Time
}

// PaymentRepository defines persistence for payments.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	Delete(id string) error
	List(filter PaymentFilter) ([]models.Payment, error)

	// ExistsDuplicateSameDay reports whether an identical (technician,
	// receiver, mode, onlineAmount, cashAmount) payment was already
	// recorded on the same calendar day as at.
	ExistsDuplicateSameDay(p *models.Payment, at time.Time) (bool, error)

	// ListCallRefs returns the call references of every payment, optionally
	// scoped to one technician. Used by the paid-status matching helpers.
	ListCallRefs(techID string) ([]models.CallRef, error)
}
