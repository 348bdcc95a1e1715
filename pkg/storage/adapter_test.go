package storage

import (
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

func openTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestLoad_EmptyDatabaseFallsBackToSeeds(t *testing.T) {
	a := openTestAdapter(t)

	characters, locations, err := a.Load()
	require.NoError(t, err)

	require.Len(t, characters, 2)
	assert.Equal(t, lore.CoreCharacterID, characters[0].ID)
	require.Len(t, locations, 2)
	assert.Equal(t, "Neo-Kowloon", locations[0].Name)
}

func TestSaveLoad_RoundTripPreservesOrderAndFields(t *testing.T) {
	a := openTestAdapter(t)

	characters := []lore.Character{
		{
			ID:            "char_b",
			Name:          "Iris",
			Role:          lore.RoleSupporting,
			Worldview:     lore.WorldviewModernCyber,
			Tags:          []string{"Hacker"},
			Relationships: []lore.Relationship{{TargetID: "char_a", Type: "Rival", Intensity: 40}},
			LastUpdated:   42,
		},
		{ID: "char_a", Name: "Old Mu", Role: lore.RoleAntagonist, Tags: []string{}, Relationships: []lore.Relationship{}, LastUpdated: 41},
	}
	locations := []lore.Location{
		{ID: "loc_a", Name: "Glass Desert", Type: "Wasteland", Residents: []string{"char_a"}},
	}

	require.NoError(t, a.Save(characters, locations))

	gotChars, gotLocs, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, characters, gotChars)
	assert.Equal(t, locations, gotLocs)
}

func TestSave_OverwritesPriorContents(t *testing.T) {
	a := openTestAdapter(t)

	require.NoError(t, a.Save(lore.SeedCharacters(), lore.SeedLocations()))
	require.NoError(t, a.Save([]lore.Character{}, []lore.Location{}))

	characters, locations, err := a.Load()
	require.NoError(t, err)
	assert.Empty(t, characters)
	assert.Empty(t, locations)
}

func TestLoad_CorruptCollectionFallsBackIndependently(t *testing.T) {
	a := openTestAdapter(t)

	saved := []lore.Location{
		{ID: "loc_a", Name: "Glass Desert", Residents: []string{}},
	}
	require.NoError(t, a.Save([]lore.Character{{ID: "char_a", Name: "Old Mu"}}, saved))

	// Corrupt only the character document.
	require.NoError(t, a.db.Set([]byte(CharactersKey), []byte("{not json"), pebble.Sync))

	characters, locations, err := a.Load()
	require.NoError(t, err)

	// Characters fell back to seeds; locations were untouched.
	require.Len(t, characters, 2)
	assert.Equal(t, lore.CoreCharacterID, characters[0].ID)
	assert.Equal(t, saved, locations)
}

func TestSaveLoad_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	a, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	saved := []lore.Character{{ID: "char_a", Name: "Old Mu", Tags: []string{}, Relationships: []lore.Relationship{}}}
	require.NoError(t, a.Save(saved, []lore.Location{}))
	require.NoError(t, a.Close())

	b, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer b.Close()

	characters, locations, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, characters)
	assert.Empty(t, locations)
}
