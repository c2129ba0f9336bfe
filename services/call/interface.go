package call

import (
	"errors"

	callRepo "fieldserve/database/repository/call"
	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/models"
	"fieldserve/services/notification"
)

var (
	// ErrCallNotFound is returned when the referenced call does not exist.
	ErrCallNotFound = errors.New("call not found")
	// ErrTechnicianNotFound is returned when the referenced technician does not exist.
	ErrTechnicianNotFound = errors.New("technician not found")
	// ErrInvalidTransition is returned when a status change violates the
	// state machine and was not forced.
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrNotAssigned is returned when a technician touches a call that is
	// not assigned to them.
	ErrNotAssigned = errors.New("call not assigned to this technician")
)

// ForwardCallRequest creates a call assigned to a technician.
type ForwardCallRequest struct {
	ClientName   string  `json:"clientName" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Address      string  `json:"address"`
	ServiceType  string  `json:"serviceType"`
	Price        float64 `json:"price"`
	TechnicianID string  `json:"technicianId" binding:"required"`
}

// UpdateCallRequest is a partial admin edit. Zero values are skipped.
type UpdateCallRequest struct {
	ClientName  string            `json:"clientName"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	ServiceType string            `json:"serviceType"`
	Price       *float64          `json:"price"`
	Status      models.CallStatus `json:"status"`
}

// CallService manages the call lifecycle.
type CallService interface {
	Forward(req ForwardCallRequest) (*models.Call, error)
	GetByID(id string) (*models.Call, error)
	List(filter callRepo.CallFilter) ([]models.Call, error)
	AdminUpdate(id string, req UpdateCallRequest, force bool) (*models.Call, error)
	UpdateStatus(id, techID string, to models.CallStatus) (*models.Call, error)
	Reassign(id, newTechID string) (*models.Call, error)
	Delete(id string) error
}

// DefaultCallService is the production implementation.
type DefaultCallService struct {
	Repo     callRepo.CallRepository
	Techs    technicianRepo.TechnicianRepository
	Notifier notification.NotificationService
}
