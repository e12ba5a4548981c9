package session

import (
	"path/filepath"
	"testing"

	"kanflow-backend/pkg/localstore"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewResolver(store)
}

func TestDefaultIsAuthenticated(t *testing.T) {
	r := newResolver(t)
	if r.IsGuestMode() {
		t.Error("fresh store must resolve to authenticated mode")
	}
}

func TestSetGuestModeRoundTrip(t *testing.T) {
	r := newResolver(t)

	if err := r.SetGuestMode(true); err != nil {
		t.Fatalf("SetGuestMode failed: %v", err)
	}
	if !r.IsGuestMode() {
		t.Error("expected guest mode after SetGuestMode(true)")
	}

	if err := r.SetGuestMode(false); err != nil {
		t.Fatalf("SetGuestMode failed: %v", err)
	}
	if r.IsGuestMode() {
		t.Error("expected authenticated mode after SetGuestMode(false)")
	}
}
