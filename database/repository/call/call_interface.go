package callRepo

import (
	"time"

	"fieldserve/models"
)

// CallFilter narrows call list queries.
type CallFilter struct {
	Status       models.CallStatus
	TechnicianID string
	From         *time.Time
	To           *time.Time
}

// CallRepository defines persistence for calls.
type CallRepository interface {
	Create(call *models.Call) error
	GetByID(id string) (*models.Call, error)
	UpdateFields(id string, fields map[string]any) error
	Delete(id string) error
	List(filter CallFilter) ([]models.Call, error)

	// ListByEffectiveClosedDate returns calls whose close timestamp — or
	// creation timestamp when no close timestamp was recorded — falls in
	// [start, end). techID, when non-empty, scopes the result.
	ListByEffectiveClosedDate(start, end time.Time, techID string) ([]models.Call, error)

	// GroupClosedLifetime groups all-time Closed calls by technician id,
	// yielding count and sum of price per technician (no date bound).
	GroupClosedLifetime(techID string) ([]models.TechnicianLifetime, error)
}
