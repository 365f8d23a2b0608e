package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// PreferencesCollection stores per-browser grid page state.
const PreferencesCollection = "grid_preferences"

// PreferenceStore keeps key/value page state for one browser client in the
// grid_preferences collection, so page and page size survive restarts.
type PreferenceStore struct {
	app    core.App
	client string
}

// NewPreferenceStore returns a store scoped to client.
func NewPreferenceStore(app core.App, client string) *PreferenceStore {
	return &PreferenceStore{app: app, client: client}
}

func (s *PreferenceStore) find(key string) (*core.Record, error) {
	return s.app.FindFirstRecordByFilter(
		PreferencesCollection,
		"client = {:client} && key = {:key}",
		dbx.Params{"client": s.client, "key": key},
	)
}

// Load returns the stored value for key. Lookup failures read as missing.
func (s *PreferenceStore) Load(key string) (string, bool) {
	rec, err := s.find(key)
	if err != nil {
		return "", false
	}
	return rec.GetString("value"), true
}

// Save upserts the value for key.
func (s *PreferenceStore) Save(key, value string) error {
	rec, err := s.find(key)
	if err != nil {
		col, err := s.app.FindCollectionByNameOrId(PreferencesCollection)
		if err != nil {
			return fmt.Errorf("find %s collection: %w", PreferencesCollection, err)
		}
		rec = core.NewRecord(col)
		rec.Set("client", s.client)
		rec.Set("key", key)
	}
	if rec.GetString("value") == value && !rec.IsNew() {
		return nil
	}
	rec.Set("value", value)
	if err := s.app.Save(rec); err != nil {
		log.Printf("preferences: save %s for %s: %v", key, s.client, err)
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}
