package models

import "time"

// ServiceForm records a completed job with photos and a signature,
// independent of the call/payment flow. FormKey uniques a submission by
// (technician, day, normalized client identity, amount) so re-submitting the
// same form appends photos instead of duplicating the record.
type ServiceForm struct {
	ID             string    `bson:"id" json:"id"`
	TechnicianID   string    `bson:"technicianId" json:"technicianId"`
	TechnicianName string    `bson:"technicianName" json:"technicianName"`
	ClientName     string    `bson:"clientName" json:"clientName"`
	Phone          string    `bson:"phone" json:"phone"`
	Address        string    `bson:"address" json:"address"`
	Amount         float64   `bson:"amount" json:"amount"`
	Photos         []string  `bson:"photos,omitempty" json:"photos,omitempty"`
	Signature      string    `bson:"signature,omitempty" json:"signature,omitempty"`
	FormKey        string    `bson:"formKey" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
