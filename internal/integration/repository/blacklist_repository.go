package repository

import (
	"strings"

	"kanflow-backend/pkg/localstore"
)

const blacklistKey = "deleted_external_tasks"

// localBlacklistRepository keeps the hidden-external-tasks set in the local
// store; external tasks are recomputed on every fetch, so hiding one is a
// purely local decision.
type localBlacklistRepository struct {
	store *localstore.Store
}

// NewLocalBlacklistRepository creates a new local BlacklistRepository
func NewLocalBlacklistRepository(store *localstore.Store) BlacklistRepository {
	return &localBlacklistRepository{store: store}
}

func (r *localBlacklistRepository) Get() ([]string, error) {
	var ids []string
	if _, err := r.store.GetJSON(blacklistKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *localBlacklistRepository) Add(id string) error {
	ids, err := r.Get()
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return r.store.SetJSON(blacklistKey, append(ids, id))
}

func (r *localBlacklistRepository) RemoveByPrefix(prefix string) error {
	ids, err := r.Get()
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			kept = append(kept, id)
		}
	}
	return r.store.SetJSON(blacklistKey, kept)
}
