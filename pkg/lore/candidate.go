package lore

import "fmt"

// ExtractionResult is the batch produced by the extraction collaborator.
// Every field on a candidate is optional; the reconciliation engine only
// depends on Name for matching. AnalysisLog is a free-text narrative that
// is forwarded to the log, never interpreted.
type ExtractionResult struct {
	Characters  []CandidateCharacter `json:"characters"`
	Locations   []CandidateLocation  `json:"locations"`
	AnalysisLog string               `json:"analysis_log,omitempty"`
}

// CandidateCharacter is an untrusted partial character extracted from free
// text. An empty field means "absent": merges only overwrite fields the
// candidate actually carries, and a candidate never becomes a stored
// Character without going through Normalize.
type CandidateCharacter struct {
	Name           string         `json:"name,omitempty"`
	Role           string         `json:"role,omitempty"`
	Worldview      string         `json:"worldview,omitempty"`
	Race           string         `json:"race,omitempty"`
	CharacterClass string         `json:"characterClass,omitempty"`
	Faction        string         `json:"faction,omitempty"`
	Description    string         `json:"description,omitempty"`
	Appearance     string         `json:"appearance,omitempty"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Relationships  []Relationship `json:"relationships,omitempty"`
}

// CandidateLocation is an untrusted partial location extracted from free text.
type CandidateLocation struct {
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	Worldview   string   `json:"worldview,omitempty"`
	Coordinates string   `json:"coordinates,omitempty"`
	Population  string   `json:"population,omitempty"`
	Description string   `json:"description,omitempty"`
	History     string   `json:"history,omitempty"`
	Culture     string   `json:"culture,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Residents   []string `json:"residents,omitempty"`
}

// ApplyTo merges the candidate's present fields into dst. The id and
// timestamp are left alone; the caller owns both.
func (c CandidateCharacter) ApplyTo(dst *Character) {
	if c.Name != "" {
		dst.Name = c.Name
	}
	if c.Role != "" {
		dst.Role = CharacterRole(c.Role)
	}
	if c.Worldview != "" {
		dst.Worldview = Worldview(c.Worldview)
	}
	if c.Race != "" {
		dst.Race = c.Race
	}
	if c.CharacterClass != "" {
		dst.CharacterClass = c.CharacterClass
	}
	if c.Faction != "" {
		dst.Faction = c.Faction
	}
	if c.Description != "" {
		dst.Description = c.Description
	}
	if c.Appearance != "" {
		dst.Appearance = c.Appearance
	}
	if c.ImageURL != "" {
		dst.ImageURL = c.ImageURL
	}
	if c.Tags != nil {
		dst.Tags = c.Tags
	}
	if c.Relationships != nil {
		dst.Relationships = c.Relationships
	}
}

// Normalize turns the candidate into a stored Character: collections default
// to empty, a placeholder image is synthesized from the name when the
// candidate supplied none, and the caller-provided id and timestamp are
// stamped on.
func (c CandidateCharacter) Normalize(id string, now int64) Character {
	ch := Character{
		ID:             id,
		Name:           c.Name,
		Role:           CharacterRole(c.Role),
		Worldview:      Worldview(c.Worldview),
		Race:           c.Race,
		CharacterClass: c.CharacterClass,
		Faction:        c.Faction,
		Description:    c.Description,
		Appearance:     c.Appearance,
		ImageURL:       c.ImageURL,
		Tags:           c.Tags,
		Relationships:  c.Relationships,
		LastUpdated:    now,
	}
	if ch.Tags == nil {
		ch.Tags = []string{}
	}
	if ch.Relationships == nil {
		ch.Relationships = []Relationship{}
	}
	if ch.ImageURL == "" {
		ch.ImageURL = PlaceholderPortraitURL(c.Name)
	}
	return ch
}

// ApplyTo merges the candidate's present fields into dst. Locations carry no
// timestamp, so there is nothing to refresh.
func (c CandidateLocation) ApplyTo(dst *Location) {
	if c.Name != "" {
		dst.Name = c.Name
	}
	if c.Type != "" {
		dst.Type = c.Type
	}
	if c.Worldview != "" {
		dst.Worldview = Worldview(c.Worldview)
	}
	if c.Coordinates != "" {
		dst.Coordinates = c.Coordinates
	}
	if c.Population != "" {
		dst.Population = c.Population
	}
	if c.Description != "" {
		dst.Description = c.Description
	}
	if c.History != "" {
		dst.History = c.History
	}
	if c.Culture != "" {
		dst.Culture = c.Culture
	}
	if c.ImageURL != "" {
		dst.ImageURL = c.ImageURL
	}
	if c.Residents != nil {
		dst.Residents = c.Residents
	}
}

// Normalize turns the candidate into a stored Location.
func (c CandidateLocation) Normalize(id string) Location {
	loc := Location{
		ID:          id,
		Name:        c.Name,
		Type:        c.Type,
		Worldview:   Worldview(c.Worldview),
		Coordinates: c.Coordinates,
		Population:  c.Population,
		Description: c.Description,
		History:     c.History,
		Culture:     c.Culture,
		ImageURL:    c.ImageURL,
		Residents:   c.Residents,
	}
	if loc.Residents == nil {
		loc.Residents = []string{}
	}
	if loc.ImageURL == "" {
		loc.ImageURL = PlaceholderScapeURL(c.Name)
	}
	return loc
}

// PlaceholderPortraitURL synthesizes a deterministic portrait reference
// seeded by the entity name.
func PlaceholderPortraitURL(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/500", seed)
}

// PlaceholderScapeURL synthesizes a deterministic landscape reference seeded
// by the entity name.
func PlaceholderScapeURL(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/400", seed)
}
