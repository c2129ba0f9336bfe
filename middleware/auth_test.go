package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldserve/models"
	"fieldserve/utils"

	"github.com/gin-gonic/gin"
)

func newAuthRouter(requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(requiredRole), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": AuthID(c)})
	})
	return r
}

func TestJWTAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthWrongRole(t *testing.T) {
	r := newAuthRouter(models.RoleAdmin)

	token, err := utils.GenerateToken("t1", "ravi", models.RoleTechnician, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	r := newAuthRouter(models.RoleTechnician)

	token, err := utils.GenerateToken("t1", "ravi", models.RoleTechnician, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthAnyRole(t *testing.T) {
	r := newAuthRouter("")

	token, err := utils.GenerateToken("a1", "admin", models.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected any authenticated role to pass, got %d", w.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	r := newAuthRouter("")

	token, err := utils.GenerateToken("t1", "ravi", models.RoleTechnician, -time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected expired token to be rejected, got %d", w.Code)
	}
}
