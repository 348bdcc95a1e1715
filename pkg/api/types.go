package api

import (
	"github.com/entityentitled101/loreforge/pkg/lore"
	"github.com/entityentitled101/loreforge/pkg/reconcile"
)

// APIResponse represents a standard API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ImportResponse is returned by the import endpoint.
type ImportResponse struct {
	Summary     reconcile.Summary `json:"summary"`
	AnalysisLog string            `json:"analysis_log,omitempty"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port int
	Bind string
}

// LoreStore defines the store operations the API surface consumes.
type LoreStore interface {
	Characters() []lore.Character
	GetCharacter(id string) (lore.Character, bool)
	AddCharacter(ch lore.Character) (lore.Character, error)
	UpdateCharacter(id string, patch lore.CandidateCharacter) (lore.Character, error)
	DeleteCharacter(id string) error

	Locations() []lore.Location
	GetLocation(id string) (lore.Location, bool)
	AddLocation() (lore.Location, error)
	UpdateLocation(id string, patch lore.CandidateLocation) (lore.Location, error)
	DeleteLocation(id string) error

	ImportBatch(batch *lore.ExtractionResult) (reconcile.Summary, error)
}
