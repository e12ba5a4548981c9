// Package session decides whether the app runs against the local guest
// store or the remote backend.
package session

import (
	"log"

	"kanflow-backend/pkg/localstore"
)

const guestModeKey = "guest_mode"

// Resolver reads and writes the persisted guest-mode flag. Every task
// operation consults it before touching a store.
type Resolver struct {
	store *localstore.Store
}

func NewResolver(store *localstore.Store) *Resolver {
	return &Resolver{store: store}
}

// IsGuestMode reports whether the user opted into local-only mode. A
// storage read failure resolves to the authenticated path.
func (r *Resolver) IsGuestMode() bool {
	value, found, err := r.store.Get(guestModeKey)
	if err != nil {
		log.Printf("[Session] Failed to read guest flag, assuming authenticated: %v", err)
		return false
	}
	return found && value == "true"
}

// SetGuestMode persists the flag. Leaving guest mode does not migrate any
// guest tasks; they stay in the local store.
func (r *Resolver) SetGuestMode(enabled bool) error {
	if enabled {
		return r.store.Set(guestModeKey, "true")
	}
	return r.store.Set(guestModeKey, "false")
}
