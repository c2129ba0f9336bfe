package models

import "time"

// PaymentMode is how the money was collected.
type PaymentMode string

const (
	PayOnline PaymentMode = "Online"
	PayCash   PaymentMode = "Cash"
	PayBoth   PaymentMode = "Both"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	switch m {
	case PayOnline, PayCash, PayBoth:
		return true
	}
	return false
}

// CallRef is a snapshot of a call attached to a payment, carrying the
// online/cash split attributed to that call. The snapshot fields are copies
// taken at submission time; CallID is the link back to the call.
type CallRef struct {
	CallID       string  `bson:"callId" json:"callId"`
	ClientName   string  `bson:"clientName" json:"clientName"`
	Phone        string  `bson:"phone" json:"phone"`
	Address      string  `bson:"address" json:"address"`
	ServiceType  string  `bson:"serviceType" json:"serviceType"`
	Price        float64 `bson:"price" json:"price"`
	OnlineAmount float64 `bson:"onlineAmount" json:"onlineAmount"`
	CashAmount   float64 `bson:"cashAmount" json:"cashAmount"`
}

// Amount is the total attributed to the referenced call.
func (r CallRef) Amount() float64 {
	return r.OnlineAmount + r.CashAmount
}

// Payment is a technician-submitted record of money collected from a
// customer, optionally itemized per call.
type Payment struct {
	ID             string      `bson:"id" json:"id"`
	TechnicianID   string      `bson:"technicianId" json:"technicianId"`
	TechnicianName string      `bson:"technicianName" json:"technicianName"`
	ReceiverName   string      `bson:"receiverName" json:"receiverName"`
	Mode           PaymentMode `bson:"mode" json:"mode"`
	OnlineAmount   float64     `bson:"onlineAmount" json:"onlineAmount"`
	CashAmount     float64     `bson:"cashAmount" json:"cashAmount"`
	Calls          []CallRef   `bson:"calls" json:"calls"`
	Signature      string      `bson:"signature,omitempty" json:"signature,omitempty"`
	CreatedAt      time.Time   `bson:"createdAt" json:"createdAt"`
}
