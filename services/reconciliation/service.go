package reconciliation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	callRepo "fieldserve/database/repository/call"
	paymentRepo "fieldserve/database/repository/payment"
	"fieldserve/models"
	"fieldserve/utils"

	"go.uber.org/zap"
)

const reportCacheTTL = 60 * time.Second

// TechnicianCalls runs the full reconciliation aggregation for the window
// derived from q. Each read is idempotent; any failure aborts the report
// with no partial result.
func (s *DefaultReconciliationService) TechnicianCalls(q TechnicianCallsQuery) (*models.TechnicianCallsReport, error) {
	window := ResolveWindow(q.Month, q.DateFrom, q.DateTo, time.Now())

	cacheKey := fmt.Sprintf("recon:techcalls:%s:%s:%s",
		window.Start.Format(dayLayout), window.End.Format(dayLayout), q.TechID)
	if cached := s.cachedReport(cacheKey); cached != nil {
		return cached, nil
	}

	technicians, err := s.Technicians.GetAll()
	if err != nil {
		return nil, fmt.Errorf("reconciliation: failed to load technicians: %w", err)
	}

	calls, err := s.Calls.ListByEffectiveClosedDate(window.Start, window.End, q.TechID)
	if err != nil {
		return nil, fmt.Errorf("reconciliation: failed to load windowed calls: %w", err)
	}

	lifetime, err := s.Calls.GroupClosedLifetime(q.TechID)
	if err != nil {
		return nil, fmt.Errorf("reconciliation: failed to load lifetime totals: %w", err)
	}

	payments, err := s.Payments.List(paymentRepo.PaymentFilter{
		TechnicianID: q.TechID,
		From:         &window.Start,
		To:           &window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("reconciliation: failed to load windowed payments: %w", err)
	}

	report := BuildReport(ReportInput{
		Window:      window,
		TechID:      q.TechID,
		Technicians: technicians,
		Calls:       calls,
		Payments:    payments,
		Lifetime:    lifetime,
	})

	s.storeReport(cacheKey, report)
	return report, nil
}

// CustomerPayments classifies every call as Paid or Pending using the
// dual-key membership index over all payment call references.
func (s *DefaultReconciliationService) CustomerPayments() (*models.CustomerPaymentsReport, error) {
	refs, err := s.Payments.ListCallRefs("")
	if err != nil {
		return nil, fmt.Errorf("reconciliation: failed to load payment refs: %w", err)
	}
	idx := BuildPaidIndex(refs)

	calls, err := s.Calls.List(callRepo.CallFilter{})
	if err != nil {
		return nil, fmt.Errorf("reconciliation: failed to load calls: %w", err)
	}

	report := &models.CustomerPaymentsReport{
		TotalCustomers: len(calls),
		Items:          make([]models.CustomerPaymentItem, 0, len(calls)),
	}
	for i := range calls {
		c := &calls[i]
		item := models.CustomerPaymentItem{
			CallID:     c.ID,
			ClientName: c.ClientName,
			Phone:      c.Phone,
			Address:    c.Address,
			Price:      c.Price,
			CreatedAt:  c.CreatedAt,
		}
		if paid, confidence := idx.Match(c); paid {
			item.Status = "Paid"
			item.MatchConfidence = confidence
			report.PaidCount++
		} else {
			item.Status = "Pending"
			report.PendingCount++
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// PaymentCheck returns the paid membership sets for one technician's own
// payment records.
func (s *DefaultReconciliationService) PaymentCheck(techID string) (*models.PaymentCheckResult, error) {
	refs, err := s.Payments.ListCallRefs(techID)
	if err != nil {
		return nil, fmt.Errorf("reconciliation: failed to load payment refs for technician %s: %w", techID, err)
	}
	idx := BuildPaidIndex(refs)
	return &models.PaymentCheckResult{
		PaidCallIDs: idx.SortedIDs(),
		PaidKeys:    idx.SortedKeys(),
	}, nil
}

// cachedReport returns a previously stored report, or nil. Cache failures
// are logged and treated as misses.
func (s *DefaultReconciliationService) cachedReport(key string) *models.TechnicianCallsReport {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var report models.TechnicianCallsReport
	if err := json.Unmarshal(raw, &report); err != nil {
		utils.GetLogger().Warn("Failed to decode cached reconciliation report", zap.Error(err))
		return nil
	}
	return &report
}

func (s *DefaultReconciliationService) storeReport(key string, report *models.TechnicianCallsReport) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.Cache.Set(ctx, key, raw, reportCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache reconciliation report", zap.Error(err))
	}
}
