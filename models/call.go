package models

import "time"

// CallStatus tracks a call through its lifecycle.
type CallStatus string

const (
	CallPending   CallStatus = "Pending"
	CallInProcess CallStatus = "In Process"
	CallCompleted CallStatus = "Completed"
	CallClosed    CallStatus = "Closed"
	CallCancelled CallStatus = "Cancelled"
)

// allowedTransitions is the call status state machine. Closed and Cancelled
// are terminal. Admin force-edits bypass this table.
var allowedTransitions = map[CallStatus][]CallStatus{
	CallPending:   {CallInProcess, CallCancelled},
	CallInProcess: {CallCompleted, CallCancelled},
	CallCompleted: {CallClosed},
}

// Valid reports whether s is a known call status.
func (s CallStatus) Valid() bool {
	switch s {
	case CallPending, CallInProcess, CallCompleted, CallClosed, CallCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the state machine allows moving from one
// status to another.
func CanTransition(from, to CallStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Call is a customer service job forwarded to a technician.
// TechnicianName is a denormalized copy of the technician's username,
// refreshed on reassignment; the id is the source of truth.
type Call struct {
	ID             string     `bson:"id" json:"id"`
	ClientName     string     `bson:"clientName" json:"clientName"`
	Phone          string     `bson:"phone" json:"phone"`
	Address        string     `bson:"address" json:"address"`
	ServiceType    string     `bson:"serviceType" json:"serviceType"`
	Price          float64    `bson:"price" json:"price"`
	Status         CallStatus `bson:"status" json:"status"`
	TechnicianID   string     `bson:"technicianId" json:"technicianId,omitempty"`
	TechnicianName string     `bson:"technicianName" json:"technicianName,omitempty"`
	PaymentStatus  string     `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	ClosedAt       *time.Time `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// EffectiveClosedAt returns the call's close timestamp, falling back to the
// creation timestamp for historical documents that never recorded one.
func (c *Call) EffectiveClosedAt() time.Time {
	if c.ClosedAt != nil {
		return *c.ClosedAt
	}
	return c.CreatedAt
}
