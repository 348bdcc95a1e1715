// Package storage persists the two lore collections as JSON documents in an
// embedded pebble database. Each collection lives under its own fixed,
// versioned key; a breaking format change would require new key names.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

const (
	// CharactersKey is the storage key for the character collection.
	CharactersKey = "lore_forge_db_v1"
	// LocationsKey is the storage key for the location collection.
	LocationsKey = "lore_forge_db_v1_locs"
)

// Adapter loads and saves the character and location collections. Both
// collections are written in a single batch so a partial write (characters
// saved, locations not) is never observable.
type Adapter struct {
	db  *pebble.DB
	log *zap.Logger
}

// Open opens (or creates) the database under dataDir.
func Open(dataDir string, log *zap.Logger) (*Adapter, error) {
	db, err := pebble.Open(dataDir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dataDir, err)
	}
	return &Adapter{db: db, log: log}, nil
}

// Load reads both collections. Missing or malformed stored data falls back
// to the seed dataset for that collection independently; a parse failure in
// one collection never affects the other. Load itself only errors on
// storage-level failures.
func (a *Adapter) Load() ([]lore.Character, []lore.Location, error) {
	var characters []lore.Character
	if err := a.readDoc(CharactersKey, &characters); err != nil {
		a.log.Warn("character collection unreadable, falling back to seed data",
			zap.String("key", CharactersKey), zap.Error(err))
		characters = lore.SeedCharacters()
	}

	var locations []lore.Location
	if err := a.readDoc(LocationsKey, &locations); err != nil {
		a.log.Warn("location collection unreadable, falling back to seed data",
			zap.String("key", LocationsKey), zap.Error(err))
		locations = lore.SeedLocations()
	}

	return characters, locations, nil
}

// Save writes both collections atomically, fully overwriting prior contents.
func (a *Adapter) Save(characters []lore.Character, locations []lore.Location) error {
	charDoc, err := json.Marshal(characters)
	if err != nil {
		return fmt.Errorf("failed to encode characters: %w", err)
	}
	locDoc, err := json.Marshal(locations)
	if err != nil {
		return fmt.Errorf("failed to encode locations: %w", err)
	}

	batch := a.db.NewBatch()
	defer batch.Close()
	if err := batch.Set([]byte(CharactersKey), charDoc, nil); err != nil {
		return fmt.Errorf("failed to stage characters: %w", err)
	}
	if err := batch.Set([]byte(LocationsKey), locDoc, nil); err != nil {
		return fmt.Errorf("failed to stage locations: %w", err)
	}
	if err := a.db.Apply(batch, pebble.Sync); err != nil {
		return fmt.Errorf("failed to commit collections: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// readDoc unmarshals the JSON document stored under key into out. A missing
// key and a malformed document are both reported as errors so the caller can
// apply its seed fallback.
func (a *Adapter) readDoc(key string, out any) error {
	data, closer, err := a.db.Get([]byte(key))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	defer closer.Close()

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
