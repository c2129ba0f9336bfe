package serviceform

import (
	"fmt"
	"time"

	serviceformRepo "fieldserve/database/repository/serviceform"
	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/models"
	"fieldserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitFormRequest is a technician service-form submission.
type SubmitFormRequest struct {
	ClientName string   `json:"clientName" binding:"required"`
	Phone      string   `json:"phone" binding:"required"`
	Address    string   `json:"address"`
	Amount     float64  `json:"amount"`
	Photos     []string `json:"photos"`
	Signature  string   `json:"signature"`
}

// ServiceFormService manages completed-job forms.
type ServiceFormService interface {
	Submit(techID string, req SubmitFormRequest) (*models.ServiceForm, bool, error)
	List(filter serviceformRepo.FormFilter) ([]models.ServiceForm, error)
}

// DefaultServiceFormService is the production implementation.
type DefaultServiceFormService struct {
	Repo  serviceformRepo.ServiceFormRepository
	Techs technicianRepo.TechnicianRepository
}

// formKey uniques a submission by technician, day and normalized client
// identity so a retried submission lands on the same document.
func formKey(techID string, day time.Time, req SubmitFormRequest) string {
	return fmt.Sprintf("%s|%s|%s|%.2f",
		techID,
		day.Format("2006-01-02"),
		utils.CustomerKey(req.ClientName, req.Phone, req.Address),
		req.Amount)
}

// Submit records a service form. Re-submitting the same form the same day
// appends the new photos to the existing record instead of duplicating it.
// The second return value reports whether a new record was created.
func (s *DefaultServiceFormService) Submit(techID string, req SubmitFormRequest) (*models.ServiceForm, bool, error) {
	key := formKey(techID, time.Now(), req)

	existing, err := s.Repo.GetByFormKey(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check existing form: %w", err)
	}
	if existing != nil {
		if len(req.Photos) > 0 {
			if err := s.Repo.AppendPhotos(existing.ID, req.Photos); err != nil {
				return nil, false, fmt.Errorf("failed to append photos: %w", err)
			}
			existing.Photos = append(existing.Photos, req.Photos...)
		}
		utils.GetLogger().Info("Service form re-submission merged",
			zap.String("formID", existing.ID), zap.Int("photosAppended", len(req.Photos)))
		return existing, false, nil
	}

	techName := ""
	tech, err := s.Techs.GetByID(techID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve technician: %w", err)
	}
	if tech != nil {
		techName = tech.Username
	}

	form := &models.ServiceForm{
		ID:             uuid.NewString(),
		TechnicianID:   techID,
		TechnicianName: techName,
		ClientName:     req.ClientName,
		Phone:          req.Phone,
		Address:        req.Address,
		Amount:         req.Amount,
		Photos:         req.Photos,
		Signature:      req.Signature,
		FormKey:        key,
	}
	if err := s.Repo.Create(form); err != nil {
		return nil, false, fmt.Errorf("failed to create service form: %w", err)
	}
	return form, true, nil
}

// List fetches service forms matching the filter.
func (s *DefaultServiceFormService) List(filter serviceformRepo.FormFilter) ([]models.ServiceForm, error) {
	return s.Repo.List(filter)
}
