package auth

import (
	"errors"
	"fmt"
	"time"

	adminRepo "fieldserve/database/repository/adminrepo"
	technicianRepo "fieldserve/database/repository/technician"
	"fieldserve/models"
	"fieldserve/utils"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any bad username/password/role
// combination. The reason is deliberately not distinguished for clients.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenDuration = 72 * time.Hour

// AuthResponse carries the issued token and the authenticated identity.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// AuthService authenticates admins and technicians.
type AuthService interface {
	Login(username, password, role string) (*AuthResponse, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Admins      adminRepo.AdminRepository
	Technicians technicianRepo.TechnicianRepository
}

// Login verifies credentials for the requested role and issues a JWT.
func (s *DefaultAuthService) Login(username, password, role string) (*AuthResponse, error) {
	var id, hash string

	switch role {
	case models.RoleAdmin:
		admin, err := s.Admins.GetByUsername(username)
		if err != nil {
			return nil, fmt.Errorf("auth: admin lookup failed: %w", err)
		}
		if admin == nil {
			return nil, ErrInvalidCredentials
		}
		id, hash = admin.ID, admin.PasswordHash
	case models.RoleTechnician:
		tech, err := s.Technicians.GetByUsername(username)
		if err != nil {
			return nil, fmt.Errorf("auth: technician lookup failed: %w", err)
		}
		if tech == nil {
			return nil, ErrInvalidCredentials
		}
		id, hash = tech.ID, tech.PasswordHash
	default:
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(id, username, role, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to generate token: %w", err)
	}

	return &AuthResponse{ID: id, Username: username, Role: role, Token: token}, nil
}
