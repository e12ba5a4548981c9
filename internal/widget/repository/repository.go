package repository

// StateRepository is the generic widget-state upsert keyed by (user, key).
type StateRepository interface {
	// GetState unmarshals the stored state into v; found is false when
	// the user has no state under key yet
	GetState(userID, key string, v interface{}) (bool, error)

	// SaveState upserts the JSON-encoded state
	SaveState(userID, key string, v interface{}) error
}
