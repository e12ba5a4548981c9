package domain

import "time"

// Integration is the persisted connection state for one provider. Config is
// stored verbatim (credentials included) and is only meaningful while
// Connected is true; disconnecting clears it entirely.
type Integration struct {
	Connected bool              `json:"connected"`
	Config    map[string]string `json:"config"`
}

// Registry maps provider key to its integration state.
type Registry map[string]Integration

// IntegrationRecord is the database row backing one registry entry.
type IntegrationRecord struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	Provider  string    `json:"provider" gorm:"primaryKey"`
	Data      string    `json:"data"` // JSON-encoded Integration
	UpdatedAt time.Time `json:"updated_at"`
}

func (IntegrationRecord) TableName() string {
	return "integrations"
}
