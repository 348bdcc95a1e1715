// Package reconcile merges a batch of AI-extracted candidate records into
// the existing character and location collections.
//
// Characters follow three distinct consistency policies: the anchor
// protagonist is pinned by its well-known id and survives every reimport,
// secondary characters are treated as placeholders that are refreshed in
// place rather than accumulated, and only when no placeholder is available
// does a candidate become a new record. Locations deduplicate by name.
package reconcile

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// coreAliases are the protagonist alias substrings matched case-insensitively.
var coreAliases = []string{"PUU", "AH PU"}

// coreAliasHan is matched as an exact substring in its original script;
// case folding does not apply to it.
const coreAliasHan = "阿葡"

// Summary reports what a merge did, for logs and import surfaces.
type Summary struct {
	CoreMerged           bool `json:"core_merged"`
	CharactersMatched    int  `json:"characters_matched"`
	PlaceholdersReplaced int  `json:"placeholders_replaced"`
	CharactersAdded      int  `json:"characters_added"`
	LocationsMerged      int  `json:"locations_merged"`
	LocationsAdded       int  `json:"locations_added"`
}

// Engine merges extraction batches. The clock and id generators are
// injectable so merges are deterministic under test.
type Engine struct {
	log       *zap.Logger
	now       func() int64
	newCharID func() string
	newLocID  func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the timestamp source.
func WithClock(now func() int64) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerators overrides the id sources for appended records.
func WithIDGenerators(charID, locID func() string) Option {
	return func(e *Engine) {
		e.newCharID = charID
		e.newLocID = locID
	}
}

// New returns an Engine with production defaults.
func New(log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		log:       log,
		now:       nowMillis,
		newCharID: lore.NewCharacterID,
		newLocID:  lore.NewLocationID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Merge applies the batch to copies of the given collections and returns the
// merged results. The inputs are never mutated; for a given batch and prior
// state the output is deterministic up to generated ids and timestamps.
func (e *Engine) Merge(characters []lore.Character, locations []lore.Location, batch *lore.ExtractionResult) ([]lore.Character, []lore.Location, Summary) {
	var summary Summary
	if batch.AnalysisLog != "" {
		e.log.Info("extraction analysis", zap.String("analysis", batch.AnalysisLog))
	}

	nextChars := e.mergeCharacters(characters, batch.Characters, &summary)
	nextLocs := e.mergeLocations(locations, batch.Locations, &summary)

	e.log.Info("batch merged",
		zap.Bool("core_merged", summary.CoreMerged),
		zap.Int("characters_matched", summary.CharactersMatched),
		zap.Int("placeholders_replaced", summary.PlaceholdersReplaced),
		zap.Int("characters_added", summary.CharactersAdded),
		zap.Int("locations_merged", summary.LocationsMerged),
		zap.Int("locations_added", summary.LocationsAdded))

	return nextChars, nextLocs, summary
}

func (e *Engine) mergeCharacters(characters []lore.Character, candidates []lore.CandidateCharacter, summary *Summary) []lore.Character {
	next := make([]lore.Character, len(characters))
	copy(next, characters)

	// Records touched in this batch, keyed by id. The consumed set is what
	// keeps a placeholder from being overwritten twice and keeps the core
	// record out of the placeholder pool once it has been force-merged.
	consumed := make(map[string]bool)

	// The core candidate is excluded from the generic pass by its index,
	// not by value equality, so a second candidate with identical fields
	// still goes through the generic path.
	coreIdx := findCoreCandidate(candidates)
	if coreIdx >= 0 {
		if pos := indexByID(next, lore.CoreCharacterID); pos >= 0 {
			cand := candidates[coreIdx]
			cand.ApplyTo(&next[pos])
			next[pos].ID = lore.CoreCharacterID
			next[pos].Role = lore.RoleProtagonist
			if cand.Name == "" {
				next[pos].Name = lore.CoreFallbackName
			}
			next[pos].LastUpdated = e.now()
			consumed[lore.CoreCharacterID] = true
			summary.CoreMerged = true
			e.log.Info("core candidate anchored", zap.String("name", next[pos].Name))
		}
	}

	for i, cand := range candidates {
		if i == coreIdx {
			continue
		}

		pos := -1
		if cand.Name != "" {
			pos = indexByName(next, cand.Name)
		}
		if pos >= 0 {
			summary.CharactersMatched++
		} else {
			// Replace-a-placeholder policy: prefer overwriting the first
			// untouched non-core record over creating a new one.
			pos = firstPlaceholder(next, consumed)
			if pos >= 0 {
				summary.PlaceholdersReplaced++
			}
		}

		if pos >= 0 {
			id := next[pos].ID
			cand.ApplyTo(&next[pos])
			next[pos].ID = id
			next[pos].LastUpdated = e.now()
			consumed[id] = true
			continue
		}

		next = append(next, cand.Normalize(e.newCharID(), e.now()))
		summary.CharactersAdded++
	}

	return next
}

func (e *Engine) mergeLocations(locations []lore.Location, candidates []lore.CandidateLocation, summary *Summary) []lore.Location {
	next := make([]lore.Location, len(locations))
	copy(next, locations)

	for _, cand := range candidates {
		pos := -1
		if cand.Name != "" {
			for k := range next {
				if strings.EqualFold(next[k].Name, cand.Name) {
					pos = k
					break
				}
			}
		}

		if pos >= 0 {
			id := next[pos].ID
			cand.ApplyTo(&next[pos])
			next[pos].ID = id
			summary.LocationsMerged++
			continue
		}

		// Unnamed candidates never match, so they always land here.
		next = append(next, cand.Normalize(e.newLocID()))
		summary.LocationsAdded++
	}

	return next
}

// findCoreCandidate returns the index of the first candidate whose name
// contains a protagonist alias, or -1.
func findCoreCandidate(candidates []lore.CandidateCharacter) int {
	for i, cand := range candidates {
		if cand.Name == "" {
			continue
		}
		if isCoreName(cand.Name) {
			return i
		}
	}
	return -1
}

func isCoreName(name string) bool {
	if strings.Contains(name, coreAliasHan) {
		return true
	}
	upper := strings.ToUpper(name)
	for _, alias := range coreAliases {
		if strings.Contains(upper, alias) {
			return true
		}
	}
	return false
}

func indexByID(characters []lore.Character, id string) int {
	for i := range characters {
		if characters[i].ID == id {
			return i
		}
	}
	return -1
}

// indexByName finds a record by exact name for the generic merge pass. The
// core record is skipped: it is only ever written through the anchoring
// rule, so a later core lookalike can never fold into it by name.
func indexByName(characters []lore.Character, name string) int {
	for i := range characters {
		if characters[i].ID == lore.CoreCharacterID {
			continue
		}
		if characters[i].Name == name {
			return i
		}
	}
	return -1
}

// firstPlaceholder returns the index of the first record that is neither the
// core record nor already consumed in this batch, or -1 when none is left.
func firstPlaceholder(characters []lore.Character, consumed map[string]bool) int {
	for i := range characters {
		if characters[i].ID == lore.CoreCharacterID {
			continue
		}
		if consumed[characters[i].ID] {
			continue
		}
		return i
	}
	return -1
}
