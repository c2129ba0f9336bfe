package technician

import (
	"errors"
	"fmt"

	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken is returned when creating a technician with an
	// existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrTechnicianNotFound is returned when the referenced technician does not exist.
	ErrTechnicianNotFound = errors.New("technician not found")
)

// CreateTechnicianRequest creates a technician account.
type CreateTechnicianRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

// UpdateTechnicianRequest is a partial admin edit. Zero values are skipped.
type UpdateTechnicianRequest struct {
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
}

// TechnicianService manages technician accounts.
type TechnicianService interface {
	Create(req CreateTechnicianRequest) (*models.Technician, error)
	GetByID(id string) (*models.Technician, error)
	GetAll() ([]models.Technician, error)
	Update(id string, req UpdateTechnicianRequest) (*models.Technician, error)
	Delete(id string) error
	SetFCMToken(id, token string) error
	SetAvatar(id, publicID string) error
}

// DefaultTechnicianService is the production implementation.
type DefaultTechnicianService struct {
	Repo technicianRepo.TechnicianRepository
}

// Create registers a new technician account, rejecting duplicate usernames.
func (s *DefaultTechnicianService) Create(req CreateTechnicianRequest) (*models.Technician, error) {
	existing, err := s.Repo.GetByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tech := &models.Technician{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Phone:        req.Phone,
	}
	if err := s.Repo.Create(tech); err != nil {
		return nil, fmt.Errorf("failed to create technician: %w", err)
	}
	return tech, nil
}

// GetByID fetches one technician.
func (s *DefaultTechnicianService) GetByID(id string) (*models.Technician, error) {
	tech, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch technician: %w", err)
	}
	if tech == nil {
		return nil, ErrTechnicianNotFound
	}
	return tech, nil
}

// GetAll fetches all technicians.
func (s *DefaultTechnicianService) GetAll() ([]models.Technician, error) {
	return s.Repo.GetAll()
}

// Update applies a partial edit to a technician account.
func (s *DefaultTechnicianService) Update(id string, req UpdateTechnicianRequest) (*models.Technician, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["passwordHash"] = string(hash)
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if len(fields) == 0 {
		return s.GetByID(id)
	}

	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update technician: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the account. Historical calls and payments keep their
// technician id; reconciliation tolerates the dangling reference.
func (s *DefaultTechnicianService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete technician: %w", err)
	}
	return nil
}

// SetFCMToken registers the technician's push token.
func (s *DefaultTechnicianService) SetFCMToken(id, token string) error {
	if err := s.Repo.UpdateFields(id, map[string]any{"fcmToken": token}); err != nil {
		return fmt.Errorf("failed to set FCM token: %w", err)
	}
	return nil
}

// SetAvatar stores the uploaded avatar's public id.
func (s *DefaultTechnicianService) SetAvatar(id, publicID string) error {
	if err := s.Repo.UpdateFields(id, map[string]any{"avatar": publicID}); err != nil {
		return fmt.Errorf("failed to set avatar: %w", err)
	}
	return nil
}
