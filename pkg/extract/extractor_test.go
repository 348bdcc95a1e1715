package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapSource(t *testing.T) {
	short := "a short source"
	assert.Equal(t, short, capSource(short))

	long := strings.Repeat("葡", maxSourceRunes+100)
	capped := capSource(long)
	// Rune-based cap, not byte-based.
	assert.Equal(t, maxSourceRunes, len([]rune(capped)))
}

func TestDecodeResult(t *testing.T) {
	payload := `{
		"characters": [
			{"name": "PUU", "role": "Protagonist", "tags": ["Core"]},
			{"name": "Old Mu"}
		],
		"locations": [
			{"name": "Neo-Kowloon", "population": "13,000,000"}
		],
		"analysis_log": "Mapped Ah Pu to core. Identified Old Mu as main male lead."
	}`

	result, err := decodeResult([]byte(payload))
	require.NoError(t, err)

	require.Len(t, result.Characters, 2)
	assert.Equal(t, "PUU", result.Characters[0].Name)
	assert.Equal(t, []string{"Core"}, result.Characters[0].Tags)
	// Absent fields stay at their zero values.
	assert.Empty(t, result.Characters[1].Role)
	assert.Nil(t, result.Characters[1].Tags)

	require.Len(t, result.Locations, 1)
	assert.Equal(t, "13,000,000", result.Locations[0].Population)
	assert.NotEmpty(t, result.AnalysisLog)
}

func TestDecodeResult_Errors(t *testing.T) {
	_, err := decodeResult(nil)
	require.Error(t, err)

	_, err = decodeResult([]byte("not json at all"))
	require.Error(t, err)
}

func TestDecodeResult_ToleratesMissingCollections(t *testing.T) {
	result, err := decodeResult([]byte(`{"analysis_log": "nothing found"}`))
	require.NoError(t, err)
	assert.Empty(t, result.Characters)
	assert.Empty(t, result.Locations)
}

func TestFlattenMarkdown(t *testing.T) {
	src := []byte("# Chapter One\n\nAh Pu walked into **Neo-Kowloon** at dusk.\n\n- met Old Mu\n- lost the map\n\n```\nraw note\n```\n")

	text, err := FlattenMarkdown(src)
	require.NoError(t, err)

	assert.Contains(t, text, "Chapter One")
	assert.Contains(t, text, "Ah Pu walked into Neo-Kowloon at dusk.")
	assert.Contains(t, text, "met Old Mu")
	assert.Contains(t, text, "raw note")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "# ")
}

func TestPromptMentionsSchemaAndAliases(t *testing.T) {
	// The prompt is the contract with the model; keep the pieces the
	// reconciliation engine depends on.
	assert.Contains(t, extractionPrompt, `"characters"`)
	assert.Contains(t, extractionPrompt, `"locations"`)
	assert.Contains(t, extractionPrompt, `"analysis_log"`)
	assert.Contains(t, extractionPrompt, "阿葡")
	assert.Contains(t, extractionPrompt, "PUU")
}
