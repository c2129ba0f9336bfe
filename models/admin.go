package models

import "time"

// Admin is a privileged account. One is seeded on first run if the
// collection is empty.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Roles carried in JWT claims and checked by middleware.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)
