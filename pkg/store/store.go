// Package store owns the in-memory character and location collections. All
// reads and writes flow through it; every successful mutation is written
// through to the persistence adapter as one logical transaction.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/lore"
	"github.com/entityentitled101/loreforge/pkg/reconcile"
)

// ErrNotFound is returned by update and delete operations when no record
// matches the given id.
var ErrNotFound = errors.New("record not found")

// Persister is the write-through target for the store's collections.
type Persister interface {
	Load() ([]lore.Character, []lore.Location, error)
	Save(characters []lore.Character, locations []lore.Location) error
}

// Store is the single writer of truth for both collections. It is
// constructed once at process start and injected into every consumer. The
// mutex keeps each operation atomic from the caller's perspective.
type Store struct {
	mu         sync.Mutex
	characters []lore.Character
	locations  []lore.Location

	persister Persister
	engine    *reconcile.Engine
	log       *zap.Logger
	now       func() int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() int64) Option {
	return func(s *Store) { s.now = now }
}

// WithEngine overrides the reconciliation engine.
func WithEngine(engine *reconcile.Engine) Option {
	return func(s *Store) { s.engine = engine }
}

// New loads both collections from the persister and returns a ready store.
// Nothing is written back until the first mutation, so stored data is never
// clobbered by empty defaults.
func New(persister Persister, log *zap.Logger, opts ...Option) (*Store, error) {
	characters, locations, err := persister.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}

	s := &Store{
		characters: characters,
		locations:  locations,
		persister:  persister,
		log:        log,
		now:        func() int64 { return time.Now().UnixMilli() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = reconcile.New(log)
	}

	log.Info("store loaded",
		zap.Int("characters", len(characters)),
		zap.Int("locations", len(locations)))
	return s, nil
}

// Characters returns a copy of the character collection, newest first.
func (s *Store) Characters() []lore.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lore.Character, len(s.characters))
	copy(out, s.characters)
	return out
}

// Locations returns a copy of the location collection, oldest first.
func (s *Store) Locations() []lore.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lore.Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// GetCharacter returns the character with the given id.
func (s *Store) GetCharacter(id string) (lore.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.characters {
		if s.characters[i].ID == id {
			return s.characters[i], true
		}
	}
	return lore.Character{}, false
}

// AddCharacter assigns a fresh id and timestamp and prepends the character,
// so the collection stays newest-first.
func (s *Store) AddCharacter(ch lore.Character) (lore.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch.ID = lore.NewCharacterID()
	ch.LastUpdated = s.now()
	if ch.Tags == nil {
		ch.Tags = []string{}
	}
	if ch.Relationships == nil {
		ch.Relationships = []lore.Relationship{}
	}

	s.characters = append([]lore.Character{ch}, s.characters...)
	if err := s.persist(); err != nil {
		return lore.Character{}, err
	}
	return ch, nil
}

// UpdateCharacter merges the patch's present fields into the record with the
// given id, keeping the id and refreshing the timestamp.
func (s *Store) UpdateCharacter(id string, patch lore.CandidateCharacter) (lore.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.characters {
		if s.characters[i].ID != id {
			continue
		}
		patch.ApplyTo(&s.characters[i])
		s.characters[i].ID = id
		s.characters[i].LastUpdated = s.now()
		if err := s.persist(); err != nil {
			return lore.Character{}, err
		}
		return s.characters[i], nil
	}
	return lore.Character{}, fmt.Errorf("character %s: %w", id, ErrNotFound)
}

// DeleteCharacter removes the record with the given id. The delete does not
// cascade: ids referencing the character from other characters'
// relationships or from locations' residents are left dangling on purpose.
func (s *Store) DeleteCharacter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.characters {
		if s.characters[i].ID != id {
			continue
		}
		s.characters = append(s.characters[:i], s.characters[i+1:]...)
		return s.persist()
	}
	return fmt.Errorf("character %s: %w", id, ErrNotFound)
}

// GetLocation returns the location with the given id.
func (s *Store) GetLocation(id string) (lore.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.locations {
		if s.locations[i].ID == id {
			return s.locations[i], true
		}
	}
	return lore.Location{}, false
}

// AddLocation creates a location with fixed placeholder defaults and a fresh
// id, appended at the end. Locations grow oldest-first, unlike characters.
func (s *Store) AddLocation() (lore.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := lore.Location{
		ID:          lore.NewLocationID(),
		Name:        "NEW SECTOR",
		Type:        "Undefined",
		Worldview:   lore.WorldviewCustom,
		Coordinates: "00.00, 00.00",
		Population:  "0",
		Description: "Awaiting survey data...",
		History:     "No historical records found.",
		Culture:     "No cultural data available.",
		ImageURL:    fmt.Sprintf("https://picsum.photos/600/400?random=%d", s.now()),
		Residents:   []string{},
	}

	s.locations = append(s.locations, loc)
	if err := s.persist(); err != nil {
		return lore.Location{}, err
	}
	return loc, nil
}

// UpdateLocation merges the patch's present fields into the record with the
// given id.
func (s *Store) UpdateLocation(id string, patch lore.CandidateLocation) (lore.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.locations {
		if s.locations[i].ID != id {
			continue
		}
		patch.ApplyTo(&s.locations[i])
		s.locations[i].ID = id
		if err := s.persist(); err != nil {
			return lore.Location{}, err
		}
		return s.locations[i], nil
	}
	return lore.Location{}, fmt.Errorf("location %s: %w", id, ErrNotFound)
}

// DeleteLocation removes the record with the given id, without cascading.
func (s *Store) DeleteLocation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.locations {
		if s.locations[i].ID != id {
			continue
		}
		s.locations = append(s.locations[:i], s.locations[i+1:]...)
		return s.persist()
	}
	return fmt.Errorf("location %s: %w", id, ErrNotFound)
}

// ImportBatch merges an extraction batch into both collections via the
// reconciliation engine and persists the result as one transaction.
func (s *Store) ImportBatch(batch *lore.ExtractionResult) (reconcile.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nextChars, nextLocs, summary := s.engine.Merge(s.characters, s.locations, batch)

	prevChars, prevLocs := s.characters, s.locations
	s.characters, s.locations = nextChars, nextLocs
	if err := s.persist(); err != nil {
		s.characters, s.locations = prevChars, prevLocs
		return reconcile.Summary{}, err
	}
	return summary, nil
}

// Reset restores both collections to the seed dataset.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.characters = lore.SeedCharacters()
	s.locations = lore.SeedLocations()
	return s.persist()
}

// persist writes the current state through. Callers must hold the mutex.
func (s *Store) persist() error {
	if err := s.persister.Save(s.characters, s.locations); err != nil {
		s.log.Error("write-through failed", zap.Error(err))
		return fmt.Errorf("failed to persist collections: %w", err)
	}
	return nil
}
