// Package extract turns free-form source text into a structured batch of
// candidate characters and locations by calling the Gemini API. The result
// is untrusted: every field is optional and the reconciliation engine only
// relies on names for matching.
package extract

import (
	"context"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

// Extractor produces an extraction batch from raw source text. A failed
// extraction is terminal for that import attempt; the caller must not merge
// anything on error.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (*lore.ExtractionResult, error)
}

// maxSourceRunes caps the source text sent to the model to bound cost and
// latency.
const maxSourceRunes = 50000

// capSource truncates text to the first maxSourceRunes runes.
func capSource(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSourceRunes {
		return text
	}
	return string(runes[:maxSourceRunes])
}
