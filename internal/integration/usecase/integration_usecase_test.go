package usecase

import (
	"errors"
	"strings"
	"testing"

	"kanflow-backend/internal/integration/domain"
)

type fakeIntegrationRepo struct {
	entries map[string]domain.Integration
}

func (f *fakeIntegrationRepo) GetRegistry(userID string) (domain.Registry, error) {
	registry := domain.Registry{}
	for k, v := range f.entries {
		registry[k] = v
	}
	return registry, nil
}

func (f *fakeIntegrationRepo) SaveEntry(userID, provider string, integration domain.Integration) error {
	f.entries[provider] = integration
	return nil
}

type fakeBlacklistRepo struct {
	ids []string
}

func (f *fakeBlacklistRepo) Get() ([]string, error) { return f.ids, nil }

func (f *fakeBlacklistRepo) Add(id string) error {
	f.ids = append(f.ids, id)
	return nil
}

func (f *fakeBlacklistRepo) RemoveByPrefix(prefix string) error {
	kept := f.ids[:0]
	for _, id := range f.ids {
		if !strings.HasPrefix(id, prefix) {
			kept = append(kept, id)
		}
	}
	f.ids = kept
	return nil
}

func newTestUsecase(blacklist []string) (IntegrationUsecase, *fakeBlacklistRepo) {
	bl := &fakeBlacklistRepo{ids: blacklist}
	uc := NewIntegrationUsecase(&fakeIntegrationRepo{entries: map[string]domain.Integration{}}, bl)
	return uc, bl
}

func TestGetRegistryFillsAllProviders(t *testing.T) {
	uc, _ := newTestUsecase(nil)

	registry, err := uc.GetRegistry("u1")
	if err != nil {
		t.Fatalf("GetRegistry failed: %v", err)
	}
	if len(registry) != len(domain.Providers) {
		t.Fatalf("expected %d entries, got %d", len(domain.Providers), len(registry))
	}
	for key, entry := range registry {
		if entry.Connected {
			t.Errorf("provider %s connected by default", key)
		}
	}
}

func TestConnectStoresConfigAndPrunesBlacklist(t *testing.T) {
	uc, bl := newTestUsecase([]string{"gh-1", "gl-2", "gh-77"})

	registry, err := uc.Connect("u1", "github", map[string]string{"token": "t", "repo": "o/r"})
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	entry := registry["github"]
	if !entry.Connected {
		t.Error("github not marked connected")
	}
	if entry.Config["token"] != "t" || entry.Config["repo"] != "o/r" {
		t.Errorf("config not stored verbatim: %v", entry.Config)
	}

	if len(bl.ids) != 1 || bl.ids[0] != "gl-2" {
		t.Errorf("expected only gl-2 to survive, got %v", bl.ids)
	}
}

func TestDisconnectClearsConfigAndKeepsBlacklist(t *testing.T) {
	uc, bl := newTestUsecase([]string{"gh-1"})

	if _, err := uc.Connect("u1", "slack", map[string]string{"token": "secret"}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	registry, err := uc.Disconnect("u1", "slack")
	if err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	entry := registry["slack"]
	if entry.Connected {
		t.Error("slack still connected")
	}
	if len(entry.Config) != 0 {
		t.Errorf("config not cleared: %v", entry.Config)
	}
	if len(bl.ids) != 1 || bl.ids[0] != "gh-1" {
		t.Errorf("disconnect must not touch the blacklist, got %v", bl.ids)
	}
}

func TestUnknownProvider(t *testing.T) {
	uc, _ := newTestUsecase(nil)

	if _, err := uc.Connect("u1", "jira", nil); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
	if _, err := uc.Disconnect("u1", "jira"); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}
