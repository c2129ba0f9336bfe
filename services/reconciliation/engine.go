package reconciliation

import (
	"time"

	"fieldserve/models"
)

// ReportInput is the raw material for one technician-calls report. Calls
// are pre-filtered to the window by effective closed date, Payments by
// creation date; both are technician-scoped when TechID is set. Lifetime
// rows come from the all-time Closed grouping pipeline.
type ReportInput struct {
	Window      Window
	TechID      string
	Technicians []models.Technician
	Calls       []models.Call
	Payments    []models.Payment
	Lifetime    []models.TechnicianLifetime
}

// BuildReport assembles the technician-calls report. All joins and sums are
// in-memory; the two money figures per technician are deliberately kept
// apart: MonthAmountByPrice is implied by call prices, MonthSubmitted is
// the money actually recorded on payments and is the canonical figure.
func BuildReport(in ReportInput) *models.TechnicianCallsReport {
	byStatus := make(map[string]models.StatusBucket)
	monthClosedCount := make(map[string]int)
	monthByPrice := make(map[string]float64)

	for _, c := range in.Calls {
		b := byStatus[string(c.Status)]
		b.Count++
		b.Amount += c.Price
		byStatus[string(c.Status)] = b

		if c.Status == models.CallClosed {
			monthClosedCount[c.TechnicianID]++
			monthByPrice[c.TechnicianID] += c.Price
		}
	}

	monthSubmitted := make(map[string]float64)
	var monthAmount float64
	for _, p := range in.Payments {
		for _, ref := range p.Calls {
			monthSubmitted[p.TechnicianID] += ref.Amount()
			monthAmount += ref.Amount()
		}
	}

	lifetime := make(map[string]models.TechnicianLifetime)
	var lifeCount int
	var lifeAmount float64
	for _, row := range in.Lifetime {
		lifetime[row.TechnicianID] = row
		lifeCount += row.Count
		lifeAmount += row.Amount
	}

	rows := make([]models.TechnicianSummary, 0, len(in.Technicians))
	for _, t := range in.Technicians {
		if in.TechID != "" && t.ID != in.TechID {
			continue
		}
		life := lifetime[t.ID]
		rows = append(rows, models.TechnicianSummary{
			TechnicianID:         t.ID,
			Username:             t.Username,
			LifetimeClosedCount:  life.Count,
			LifetimeClosedAmount: life.Amount,
			MonthClosedCount:     monthClosedCount[t.ID],
			MonthAmountByPrice:   monthByPrice[t.ID],
			MonthSubmitted:       monthSubmitted[t.ID],
		})
	}

	report := &models.TechnicianCallsReport{
		Technicians: rows,
		Summary: models.ReportSummary{
			MonthAmount:          monthAmount,
			LifetimeClosedCount:  lifeCount,
			LifetimeClosedAmount: lifeAmount,
		},
		Calls:                []models.CallDetail{},
		Payments:             []models.PaymentRow{},
		MonthSummaryByStatus: byStatus,
	}

	// The per-call detail and flat payment views only make sense for a
	// single technician.
	if in.TechID != "" {
		report.Calls = buildCallDetails(in.Calls, in.Payments)
		report.Payments = buildPaymentRows(in.Payments, in.Calls)
	}

	return report
}

// buildCallDetails left-joins each call against the window's payments by
// call-reference id. Fragments referencing no fetched call are simply not
// matched here; they still count in the flat payment totals, so the
// per-call view and the aggregate can disagree when references are stale.
func buildCallDetails(calls []models.Call, payments []models.Payment) []models.CallDetail {
	details := make([]models.CallDetail, 0, len(calls))
	for _, c := range calls {
		var submitted float64
		var last *time.Time
		for _, p := range payments {
			matched := false
			for _, ref := range p.Calls {
				if ref.CallID == c.ID {
					submitted += ref.Amount()
					matched = true
				}
			}
			if matched && (last == nil || p.CreatedAt.After(*last)) {
				t := p.CreatedAt
				last = &t
			}
		}

		status := models.PaymentUnsubmitted
		if submitted > 0 {
			status = models.PaymentSubmitted
		}
		details = append(details, models.CallDetail{
			Call:            c,
			SubmittedAmount: submitted,
			PaymentStatus:   status,
			LastPaymentAt:   last,
		})
	}
	return details
}

// buildPaymentRows expands each payment's call references into flat rows
// annotated with the matched call's close state, for manual reconciliation.
func buildPaymentRows(payments []models.Payment, calls []models.Call) []models.PaymentRow {
	byID := make(map[string]models.Call, len(calls))
	for _, c := range calls {
		byID[c.ID] = c
	}

	var rows []models.PaymentRow
	for _, p := range payments {
		for _, ref := range p.Calls {
			row := models.PaymentRow{
				PaymentID:      p.ID,
				TechnicianID:   p.TechnicianID,
				TechnicianName: p.TechnicianName,
				ReceiverName:   p.ReceiverName,
				Mode:           p.Mode,
				Ref:            ref,
				CreatedAt:      p.CreatedAt,
			}
			if c, ok := byID[ref.CallID]; ok {
				row.CallStatus = c.Status
				row.CallClosedAt = c.ClosedAt
			}
			rows = append(rows, row)
		}
	}
	return rows
}
