package usecase

import (
	"kanflow-backend/internal/integration/domain"
)

// IntegrationUsecase defines the interface for integration registry logic
type IntegrationUsecase interface {
	// GetRegistry returns the user's registry with every known provider
	// present (disconnected entries filled in for providers never touched)
	GetRegistry(userID string) (domain.Registry, error)

	// Connect marks the provider connected, stores its config verbatim
	// and un-hides previously hidden tasks from that provider
	Connect(userID, provider string, config map[string]string) (domain.Registry, error)

	// Disconnect clears the provider's config and marks it disconnected;
	// hidden tasks from other providers are left untouched
	Disconnect(userID, provider string) (domain.Registry, error)
}
