package repository

import (
	"kanflow-backend/pkg/localstore"
)

// localStateRepository keeps widget state in the device-local store so
// guest sessions work without a backend.
type localStateRepository struct {
	store *localstore.Store
}

// NewLocalStateRepository creates a localstore-backed StateRepository
func NewLocalStateRepository(store *localstore.Store) StateRepository {
	return &localStateRepository{store: store}
}

func (r *localStateRepository) key(userID, key string) string {
	return "widget_" + userID + "_" + key
}

func (r *localStateRepository) GetState(userID, key string, v interface{}) (bool, error) {
	return r.store.GetJSON(r.key(userID, key), v)
}

func (r *localStateRepository) SaveState(userID, key string, v interface{}) error {
	return r.store.SetJSON(r.key(userID, key), v)
}

// GuestChecker reports whether the session runs against the local store.
type GuestChecker interface {
	IsGuestMode() bool
}

// switchingStateRepository routes each call to the store matching the
// current session mode. Guest and authenticated widget state never mix.
type switchingStateRepository struct {
	mode   GuestChecker
	local  StateRepository
	remote StateRepository
}

// NewSwitchingStateRepository creates a StateRepository that follows the
// session mode
func NewSwitchingStateRepository(mode GuestChecker, local, remote StateRepository) StateRepository {
	return &switchingStateRepository{mode: mode, local: local, remote: remote}
}

func (r *switchingStateRepository) pick() StateRepository {
	if r.mode.IsGuestMode() {
		return r.local
	}
	return r.remote
}

func (r *switchingStateRepository) GetState(userID, key string, v interface{}) (bool, error) {
	return r.pick().GetState(userID, key, v)
}

func (r *switchingStateRepository) SaveState(userID, key string, v interface{}) error {
	return r.pick().SaveState(userID, key, v)
}
