package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldserve/middleware"
	"fieldserve/models"
	"fieldserve/services/reconciliation"

	"github.com/gin-gonic/gin"
)

type stubReconService struct {
	gotQuery reconciliation.TechnicianCallsQuery
	report   *models.TechnicianCallsReport
	checkID  string
	err      error
}

func (s *stubReconService) TechnicianCalls(q reconciliation.TechnicianCallsQuery) (*models.TechnicianCallsReport, error) {
	s.gotQuery = q
	return s.report, s.err
}

func (s *stubReconService) CustomerPayments() (*models.CustomerPaymentsReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.CustomerPaymentsReport{TotalCustomers: 2, PaidCount: 1, PendingCount: 1}, nil
}

func (s *stubReconService) PaymentCheck(techID string) (*models.PaymentCheckResult, error) {
	s.checkID = techID
	if s.err != nil {
		return nil, s.err
	}
	return &models.PaymentCheckResult{PaidCallIDs: []string{"c1"}, PaidKeys: []string{"k1"}}, nil
}

func TestTechnicianCallsHandlerPassesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubReconService{report: &models.TechnicianCallsReport{
		Technicians:          []models.TechnicianSummary{},
		Calls:                []models.CallDetail{},
		Payments:             []models.PaymentRow{},
		MonthSummaryByStatus: map[string]models.StatusBucket{},
	}}
	h := NewReconciliationHandler(svc)

	r := gin.New()
	r.GET("/report", h.TechnicianCallsHandler)

	req := httptest.NewRequest(http.MethodGet, "/report?month=2025-06&techId=t1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotQuery.Month != "2025-06" || svc.gotQuery.TechID != "t1" {
		t.Fatalf("expected query to reach the service, got %+v", svc.gotQuery)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, key := range []string{"technicians", "summary", "calls", "payments", "monthSummaryByStatus"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %q in response body", key)
		}
	}
}

func TestTechnicianCallsHandlerServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReconciliationHandler(&stubReconService{err: errors.New("mongo down")})

	r := gin.New()
	r.GET("/report", h.TechnicianCallsHandler)

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestPaymentCheckHandlerUsesCallerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubReconService{}
	h := NewReconciliationHandler(svc)

	r := gin.New()
	r.GET("/check", func(c *gin.Context) {
		c.Set(middleware.CtxAuthID, "t1")
	}, h.PaymentCheckHandler)

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.checkID != "t1" {
		t.Fatalf("expected the caller id to scope the check, got %q", svc.checkID)
	}

	var body struct {
		PaidCallIDs []string `json:"paidCallIds"`
		PaidKeys    []string `json:"paidKeys"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.PaidCallIDs) != 1 || body.PaidCallIDs[0] != "c1" {
		t.Fatalf("expected paid call ids, got %v", body.PaidCallIDs)
	}
}

func TestCustomerPaymentsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewReconciliationHandler(&stubReconService{})

	r := gin.New()
	r.GET("/customers", h.CustomerPaymentsHandler)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		TotalCustomers int `json:"totalCustomers"`
		PaidCount      int `json:"paidCount"`
		PendingCount   int `json:"pendingCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.TotalCustomers != 2 || body.PaidCount != 1 || body.PendingCount != 1 {
		t.Fatalf("unexpected counts: %+v", body)
	}
}
