package payment

import (
	"errors"
	"fmt"
	"time"

	paymentRepo "fieldserve/database/repository/payment"
	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/models"
	"fieldserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrDuplicatePayment is returned when an identical submission already
	// exists for the same calendar day.
	ErrDuplicatePayment = errors.New("duplicate payment for today")
	// ErrPaymentNotFound is returned when the referenced payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInvalidMode is returned for an unknown payment mode.
	ErrInvalidMode = errors.New("invalid payment mode")
)

// SubmitPaymentRequest is a technician payment submission.
type SubmitPaymentRequest struct {
	ReceiverName string             `json:"receiverName" binding:"required"`
	Mode         models.PaymentMode `json:"mode" binding:"required"`
	OnlineAmount float64            `json:"onlineAmount"`
	CashAmount   float64            `json:"cashAmount"`
	Calls        []models.CallRef   `json:"calls"`
	Signature    string             `json:"signature"`
}

// PaymentService manages payment records.
type PaymentService interface {
	Submit(techID string, req SubmitPaymentRequest) (*models.Payment, error)
	List(filter paymentRepo.PaymentFilter) ([]models.Payment, error)
	Delete(id string) error
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo  paymentRepo.PaymentRepository
	Techs technicianRepo.TechnicianRepository
}

// Submit records a payment after the same-day duplicate check. The check and
// the insert are two store operations; two simultaneous identical
// submissions can both pass the check — a known race, not an invariant.
func (s *DefaultPaymentService) Submit(techID string, req SubmitPaymentRequest) (*models.Payment, error) {
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}

	techName := ""
	tech, err := s.Techs.GetByID(techID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve technician: %w", err)
	}
	if tech != nil {
		techName = tech.Username
	}

	now := time.Now()
	p := &models.Payment{
		ID:             uuid.NewString(),
		TechnicianID:   techID,
		TechnicianName: techName,
		ReceiverName:   req.ReceiverName,
		Mode:           req.Mode,
		OnlineAmount:   req.OnlineAmount,
		CashAmount:     req.CashAmount,
		Calls:          req.Calls,
		Signature:      req.Signature,
		CreatedAt:      now,
	}

	dup, err := s.Repo.ExistsDuplicateSameDay(p, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate payment: %w", err)
	}
	if dup {
		return nil, ErrDuplicatePayment
	}

	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	utils.GetLogger().Info("Payment submitted",
		zap.String("paymentID", p.ID),
		zap.String("technicianID", techID),
		zap.Float64("onlineAmount", p.OnlineAmount),
		zap.Float64("cashAmount", p.CashAmount))
	return p, nil
}

// List fetches payments matching the filter.
func (s *DefaultPaymentService) List(filter paymentRepo.PaymentFilter) ([]models.Payment, error) {
	return s.Repo.List(filter)
}

// Delete removes a payment record. No amount reversal happens anywhere;
// sums are recomputed from the remaining documents on read.
func (s *DefaultPaymentService) Delete(id string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch payment: %w", err)
	}
	if existing == nil {
		return ErrPaymentNotFound
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}
