// Package lore defines the entity model shared by the store, the
// reconciliation engine, and the import surfaces: characters, locations,
// relationships, and the untrusted candidate shapes produced by the
// AI extraction collaborator.
package lore

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// CharacterRole classifies a character's narrative function.
type CharacterRole string

const (
	RoleProtagonist CharacterRole = "Protagonist"
	RoleAntagonist  CharacterRole = "Antagonist"
	RoleSupporting  CharacterRole = "Supporting"
	RoleBackground  CharacterRole = "Background"
)

// Worldview is the setting/genre tag attached to characters and locations.
type Worldview string

const (
	WorldviewModernCyber     Worldview = "Modern / Cyber_Realism"
	WorldviewHighFantasy     Worldview = "High Fantasy / D&D"
	WorldviewPostApocalyptic Worldview = "Post Apocalyptic"
	WorldviewCustom          Worldview = "Custom / Unspecified"
)

// CoreCharacterID is the well-known id of the anchor protagonist. Callers
// single out the protagonist by this id convention, never by a flag on the
// record itself.
const CoreCharacterID = "char_001"

// CoreFallbackName is used when a core candidate arrives without a name.
const CoreFallbackName = "PUU (Core)"

// Relationship is a weak by-id reference from one character to another.
// TargetID is never validated against existing ids; consumers must treat a
// missing lookup as absent, not erroneous.
type Relationship struct {
	TargetID  string `json:"targetId"`
	Type      string `json:"type"`
	Intensity int    `json:"intensity"` // 0-100 bond strength
}

// Character is a validated, stored character record.
type Character struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Role           CharacterRole  `json:"role"`
	Worldview      Worldview      `json:"worldview"`
	Race           string         `json:"race"`
	CharacterClass string         `json:"characterClass"`
	Faction        string         `json:"faction,omitempty"`
	Description    string         `json:"description"`
	Appearance     string         `json:"appearance"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	Tags           []string       `json:"tags"`
	Relationships  []Relationship `json:"relationships"`
	LastUpdated    int64          `json:"lastUpdated"` // unix milliseconds, set by the store
}

// Location is a validated, stored location record. Residents holds character
// ids associated with the location; the location is the sole owner of that
// association and dangling ids are tolerated.
type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Worldview   Worldview `json:"worldview"`
	Coordinates string    `json:"coordinates"`
	Population  string    `json:"population"`
	Description string    `json:"description"`
	History     string    `json:"history"`
	Culture     string    `json:"culture"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Residents   []string  `json:"residents"`
}

// NewCharacterID returns a fresh character id. KSUIDs are time-ordered with
// a random payload, so collisions are practically impossible within a
// process lifetime.
func NewCharacterID() string {
	return fmt.Sprintf("char_%s", ksuid.New().String())
}

// NewLocationID returns a fresh location id.
func NewLocationID() string {
	return fmt.Sprintf("loc_%s", ksuid.New().String())
}
