package serviceformRepo

import (
	"time"

	"fieldserve/models"
)

// FormFilter narrows service-form list queries.
type FormFilter struct {
	TechnicianID string
	From         *time.Time
	To           *time.Time
}

// ServiceFormRepository defines persistence for service forms.
type ServiceFormRepository interface {
	Create(form *models.ServiceForm) error
	GetByFormKey(key string) (*models.ServiceForm, error)
	AppendPhotos(id string, photos []string) error
	List(filter FormFilter) ([]models.ServiceForm, error)
}
