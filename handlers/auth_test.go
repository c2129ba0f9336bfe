package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fieldserve/models"
	"fieldserve/services/auth"

	"github.com/gin-gonic/gin"
)

type stubAuthService struct {
	resp *auth.AuthResponse
	err  error
}

func (s *stubAuthService) Login(username, password, role string) (*auth.AuthResponse, error) {
	return s.resp, s.err
}

func newLoginRouter(svc auth.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", NewAuthHandler(svc).LoginHandler)
	return r
}

func TestLoginHandlerSuccess(t *testing.T) {
	r := newLoginRouter(&stubAuthService{resp: &auth.AuthResponse{
		ID:       "a1",
		Username: "admin",
		Role:     models.RoleAdmin,
		Token:    "signed-token",
	}})

	body := `{"username":"admin","password":"secret","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Auth struct {
			Token string `json:"token"`
			Role  string `json:"role"`
		} `json:"auth"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Auth.Token != "signed-token" || resp.Auth.Role != models.RoleAdmin {
		t.Fatalf("unexpected auth payload: %+v", resp.Auth)
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	r := newLoginRouter(&stubAuthService{err: auth.ErrInvalidCredentials})

	body := `{"username":"admin","password":"wrong","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginHandlerMissingFields(t *testing.T) {
	r := newLoginRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
