package models

import "time"

// Technician is a service worker account. Username doubles as the login
// identity and display name. AssignedCallIDs is a denormalized
// back-reference maintained on forward/reassign/delete; it is not
// authoritative — the call documents are.
type Technician struct {
	ID              string    `bson:"id" json:"id"`
	Username        string    `bson:"username" json:"username"`
	PasswordHash    string    `bson:"passwordHash" json:"-"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar          string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	FCMToken        string    `bson:"fcmToken,omitempty" json:"-"`
	AssignedCallIDs []string  `bson:"assignedCallIds,omitempty" json:"assignedCallIds,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
