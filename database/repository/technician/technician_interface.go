package technicianRepo

import "fieldserve/models"

// TechnicianRepository defines persistence for technician accounts.
type TechnicianRepository interface {
	Create(tech *models.Technician) error
	GetByID(id string) (*models.Technician, error)
	GetByUsername(username string) (*models.Technician, error)
	GetAll() ([]models.Technician, error)
	UpdateFields(id string, fields map[string]any) error
	Delete(id string) error

	AddAssignedCall(techID, callID string) error
	RemoveAssignedCall(techID, callID string) error
}
