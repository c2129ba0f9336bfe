package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldserve/middleware"
	"fieldserve/models"
	"fieldserve/services/technician"

	"github.com/gin-gonic/gin"
)

type stubStorageService struct {
	uploadedID string
	uploadErr  error
	deleted    []string
	deleteErr  error
	plainURL   string
	signedURL  string
	urlErr     error

	gotExpires time.Duration
}

func (s *stubStorageService) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	return s.uploadedID, s.uploadErr
}

func (s *stubStorageService) DeleteFile(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return s.deleteErr
}

func (s *stubStorageService) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	return s.plainURL, s.urlErr
}

func (s *stubStorageService) GetSecureDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	s.gotExpires = expires
	return s.signedURL, s.urlErr
}

func TestDownloadURLHandlerPlainAndSigned(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &stubStorageService{
		plainURL:  "https://cdn.example/forms/a.jpg",
		signedURL: "https://cdn.example/signed/a.jpg",
	}
	h := NewStorageHandler(store)

	r := gin.New()
	r.GET("/url", h.DownloadURLHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/url?publicId=forms/a", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.URL != store.plainURL {
		t.Fatalf("expected plain URL, got %q", body.URL)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/url?publicId=forms/a&expiresIn=120", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.URL != store.signedURL {
		t.Fatalf("expected signed URL, got %q", body.URL)
	}
	if store.gotExpires != 2*time.Minute {
		t.Fatalf("expected 120s expiry to reach the service, got %v", store.gotExpires)
	}
}

func TestDownloadURLHandlerRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewStorageHandler(&stubStorageService{})

	r := gin.New()
	r.GET("/url", h.DownloadURLHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/url", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing publicId, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/url?publicId=a&expiresIn=soon", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad expiresIn, got %d", w.Code)
	}
}

func TestDeleteFileHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &stubStorageService{}
	h := NewStorageHandler(store)

	r := gin.New()
	r.DELETE("/file", h.DeleteFileHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/file?publicId=avatars/old", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.deleted) != 1 || store.deleted[0] != "avatars/old" {
		t.Fatalf("expected the asset to be deleted, got %v", store.deleted)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/file", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing publicId, got %d", w.Code)
	}

	store.deleteErr = errors.New("destroy failed")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/file?publicId=x", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on storage error, got %d", w.Code)
	}
}

type stubTechAccountService struct {
	tech      *models.Technician
	avatarID  string
	avatarSet string
}

func (s *stubTechAccountService) Create(req technician.CreateTechnicianRequest) (*models.Technician, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTechAccountService) GetByID(id string) (*models.Technician, error) {
	return s.tech, nil
}

func (s *stubTechAccountService) GetAll() ([]models.Technician, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTechAccountService) Update(id string, req technician.UpdateTechnicianRequest) (*models.Technician, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTechAccountService) Delete(id string) error {
	return errors.New("not implemented")
}

func (s *stubTechAccountService) SetFCMToken(id, token string) error {
	return errors.New("not implemented")
}

func (s *stubTechAccountService) SetAvatar(id, publicID string) error {
	s.avatarID = id
	s.avatarSet = publicID
	return nil
}

func avatarRequest(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "me.jpg")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
		t.Fatalf("failed to write file part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpdateAvatarReplacesOldAsset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &stubStorageService{uploadedID: "avatars/new"}
	svc := &stubTechAccountService{tech: &models.Technician{ID: "t1", Avatar: "avatars/old"}}
	h := NewTechnicianHandler(svc, store)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.CtxAuthID, "t1") })
	r.PUT("/avatar", h.UpdateAvatarHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, avatarRequest(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.avatarID != "t1" || svc.avatarSet != "avatars/new" {
		t.Fatalf("expected the new avatar stored for t1, got %q=%q", svc.avatarID, svc.avatarSet)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "avatars/old" {
		t.Fatalf("expected the replaced avatar deleted, got %v", store.deleted)
	}
}

func TestUpdateAvatarFirstUploadDeletesNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &stubStorageService{uploadedID: "avatars/new"}
	svc := &stubTechAccountService{tech: &models.Technician{ID: "t1"}}
	h := NewTechnicianHandler(svc, store)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.CtxAuthID, "t1") })
	r.PUT("/avatar", h.UpdateAvatarHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, avatarRequest(t))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.deleted) != 0 {
		t.Fatalf("expected no deletions on first upload, got %v", store.deleted)
	}
}
