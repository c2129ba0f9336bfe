package auth

import (
	"errors"
	"testing"

	"fieldserve/models"

	"golang.org/x/crypto/bcrypt"
)

type stubAdminRepo struct {
	admin *models.Admin
}

func (s *stubAdminRepo) GetByUsername(string) (*models.Admin, error) { return s.admin, nil }
func (s *stubAdminRepo) EnsureSeedAdmin(string, string) error        { return nil }

type stubTechRepo struct {
	tech *models.Technician
}

func (s *stubTechRepo) Create(*models.Technician) error                  { return nil }
func (s *stubTechRepo) GetByID(string) (*models.Technician, error)       { return nil, nil }
func (s *stubTechRepo) GetByUsername(string) (*models.Technician, error) { return s.tech, nil }
func (s *stubTechRepo) GetAll() ([]models.Technician, error)             { return nil, nil }
func (s *stubTechRepo) UpdateFields(string, map[string]any) error        { return nil }
func (s *stubTechRepo) Delete(string) error                              { return nil }
func (s *stubTechRepo) AddAssignedCall(string, string) error             { return nil }
func (s *stubTechRepo) RemoveAssignedCall(string, string) error          { return nil }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestLoginAdmin(t *testing.T) {
	svc := &DefaultAuthService{
		Admins: &stubAdminRepo{admin: &models.Admin{
			ID: "a1", Username: "admin", PasswordHash: mustHash(t, "secret"),
		}},
		Technicians: &stubTechRepo{},
	}

	resp, err := svc.Login("admin", "secret", models.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ID != "a1" || resp.Role != models.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", resp)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
}

func TestLoginTechnician(t *testing.T) {
	svc := &DefaultAuthService{
		Admins: &stubAdminRepo{},
		Technicians: &stubTechRepo{tech: &models.Technician{
			ID: "t1", Username: "ravi", PasswordHash: mustHash(t, "secret"),
		}},
	}

	resp, err := svc.Login("ravi", "secret", models.RoleTechnician)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Role != models.RoleTechnician {
		t.Fatalf("unexpected role: %q", resp.Role)
	}
}

func TestLoginRejections(t *testing.T) {
	hash := mustHash(t, "secret")
	svc := &DefaultAuthService{
		Admins:      &stubAdminRepo{admin: &models.Admin{ID: "a1", Username: "admin", PasswordHash: hash}},
		Technicians: &stubTechRepo{},
	}

	cases := []struct {
		name               string
		username, password string
		role               string
	}{
		{"wrong password", "admin", "wrong", models.RoleAdmin},
		{"unknown technician", "ghost", "secret", models.RoleTechnician},
		{"unknown role", "admin", "secret", "superuser"},
	}
	for _, tc := range cases {
		if _, err := svc.Login(tc.username, tc.password, tc.role); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
	}
}
