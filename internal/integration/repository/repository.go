package repository

import (
	"kanflow-backend/internal/integration/domain"
)

// IntegrationRepository persists the per-user integration registry.
type IntegrationRepository interface {
	// GetRegistry returns the full registry for the user; providers never
	// connected are simply absent
	GetRegistry(userID string) (domain.Registry, error)

	// SaveEntry upserts the state of one provider
	SaveEntry(userID, provider string, integration domain.Integration) error
}

// BlacklistRepository persists the set of hidden external task ids.
type BlacklistRepository interface {
	// Get returns all hidden ids
	Get() ([]string, error)

	// Add appends an id to the set (idempotent)
	Add(id string) error

	// RemoveByPrefix drops every id starting with prefix, leaving the
	// rest untouched
	RemoveByPrefix(prefix string) error
}
