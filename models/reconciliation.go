package models

import "time"

// Match confidence for paid-status results. Exact means the call id was
// found on a payment's call reference; Heuristic means only the normalized
// name/phone/address key matched (historical records without id linkage).
const (
	MatchExact     = "Exact"
	MatchHeuristic = "Heuristic"
)

// Payment status derived for a call within a reporting window.
const (
	PaymentSubmitted   = "Submitted"
	PaymentUnsubmitted = "Unsubmitted"
)

// StatusBucket is a count and price sum for one call status in a window.
type StatusBucket struct {
	Count  int     `bson:"count" json:"count"`
	Amount float64 `bson:"amount" json:"amount"`
}

// TechnicianLifetime is one row of the all-time Closed grouping pipeline.
type TechnicianLifetime struct {
	TechnicianID string  `bson:"_id" json:"technicianId"`
	Count        int     `bson:"count" json:"count"`
	Amount       float64 `bson:"amount" json:"amount"`
}

// TechnicianSummary is one row of the technician-calls report.
// MonthAmountByPrice is the call-price-based figure, kept for reference;
// MonthSubmitted is the payment-based figure and is canonical.
type TechnicianSummary struct {
	TechnicianID         string  `json:"technicianId"`
	Username             string  `json:"username"`
	LifetimeClosedCount  int     `json:"lifetimeClosedCount"`
	LifetimeClosedAmount float64 `json:"lifetimeClosedAmount"`
	MonthClosedCount     int     `json:"monthClosedCount"`
	MonthAmountByPrice   float64 `json:"monthAmountByPrice"`
	MonthSubmitted       float64 `json:"monthSubmitted"`
}

// CallDetail annotates a call with its matched payment fragments for the
// single-technician view.
type CallDetail struct {
	Call            Call       `json:"call"`
	SubmittedAmount float64    `json:"submittedAmount"`
	PaymentStatus   string     `json:"paymentStatus"`
	LastPaymentAt   *time.Time `json:"lastPaymentAt,omitempty"`
}

// PaymentRow is one unwound payment call-reference, annotated with the
// matched call's close state. Diagnostic only; not used by the summary math.
type PaymentRow struct {
	PaymentID      string      `json:"paymentId"`
	TechnicianID   string      `json:"technicianId"`
	TechnicianName string      `json:"technicianName"`
	ReceiverName   string      `json:"receiverName"`
	Mode           PaymentMode `json:"mode"`
	Ref            CallRef     `json:"ref"`
	CallStatus     CallStatus  `json:"callStatus,omitempty"`
	CallClosedAt   *time.Time  `json:"callClosedAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// ReportSummary holds the overall figures. MonthAmount is the canonical
// payment-submission-based total for the window.
type ReportSummary struct {
	MonthAmount          float64 `json:"monthAmount"`
	LifetimeClosedCount  int     `json:"lifetimeClosedCount"`
	LifetimeClosedAmount float64 `json:"lifetimeClosedAmount"`
}

// TechnicianCallsReport is the technician-calls reconciliation payload.
type TechnicianCallsReport struct {
	Technicians          []TechnicianSummary     `json:"technicians"`
	Summary              ReportSummary           `json:"summary"`
	Calls                []CallDetail            `json:"calls"`
	Payments             []PaymentRow            `json:"payments"`
	MonthSummaryByStatus map[string]StatusBucket `json:"monthSummaryByStatus"`
}

// CustomerPaymentItem is one row of the customer-payments view.
type CustomerPaymentItem struct {
	CallID          string    `json:"callId"`
	ClientName      string    `json:"clientName"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	MatchConfidence string    `json:"matchConfidence,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CustomerPaymentsReport aggregates paid/pending status across all calls.
type CustomerPaymentsReport struct {
	TotalCustomers int                   `json:"totalCustomers"`
	PaidCount      int                   `json:"paidCount"`
	PendingCount   int                   `json:"pendingCount"`
	Items          []CustomerPaymentItem `json:"items"`
}

// PaymentCheckResult is the technician-scoped paid-membership view.
type PaymentCheckResult struct {
	PaidCallIDs []string `json:"paidCallIds"`
	PaidKeys    []string `json:"paidKeys"`
}
