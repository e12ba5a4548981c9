package usecase

import (
	"errors"
	"log"

	"kanflow-backend/internal/integration/domain"
	"kanflow-backend/internal/integration/repository"
)

// ErrUnknownProvider is returned for providers outside the fixed set.
var ErrUnknownProvider = errors.New("unknown provider")

// integrationUsecase implements IntegrationUsecase
type integrationUsecase struct {
	integrationRepo repository.IntegrationRepository
	blacklistRepo   repository.BlacklistRepository
}

// NewIntegrationUsecase creates a new instance of integrationUsecase
func NewIntegrationUsecase(integrationRepo repository.IntegrationRepository, blacklistRepo repository.BlacklistRepository) IntegrationUsecase {
	return &integrationUsecase{
		integrationRepo: integrationRepo,
		blacklistRepo:   blacklistRepo,
	}
}

func (u *integrationUsecase) GetRegistry(userID string) (domain.Registry, error) {
	registry, err := u.integrationRepo.GetRegistry(userID)
	if err != nil {
		return nil, err
	}
	for _, p := range domain.Providers {
		if _, ok := registry[p.Key]; !ok {
			registry[p.Key] = domain.Integration{Connected: false, Config: map[string]string{}}
		}
	}
	return registry, nil
}

func (u *integrationUsecase) Connect(userID, provider string, config map[string]string) (domain.Registry, error) {
	p, ok := domain.ProviderByKey(provider)
	if !ok {
		return nil, ErrUnknownProvider
	}
	if config == nil {
		config = map[string]string{}
	}

	entry := domain.Integration{Connected: true, Config: config}
	if err := u.integrationRepo.SaveEntry(userID, provider, entry); err != nil {
		return nil, err
	}

	// Reconnecting un-hides this provider's tasks only
	if err := u.blacklistRepo.RemoveByPrefix(p.Prefix); err != nil {
		log.Printf("[Integration] Failed to prune hidden tasks for %s: %v", provider, err)
	}

	return u.GetRegistry(userID)
}

func (u *integrationUsecase) Disconnect(userID, provider string) (domain.Registry, error) {
	if _, ok := domain.ProviderByKey(provider); !ok {
		return nil, ErrUnknownProvider
	}

	entry := domain.Integration{Connected: false, Config: map[string]string{}}
	if err := u.integrationRepo.SaveEntry(userID, provider, entry); err != nil {
		return nil, err
	}
	return u.GetRegistry(userID)
}
