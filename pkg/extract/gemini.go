package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/entityentitled101/loreforge/pkg/lore"
)

// extractionPrompt is the fixed instruction prompt for the archivist task.
// The identity-mapping rules mirror what the reconciliation engine expects:
// core aliases map to the anchor protagonist, secondary characters replace
// placeholders.
const extractionPrompt = `ROLE: Lead Data Archivist for LoreForge.
TASK: Scan the input text. Extract Characters and Locations into JSON.

*** IDENTITY MAPPING STRATEGY (MANDATORY) ***
1. CORE MATCH: If a character name contains "阿葡", "Ah Pu", "PUU", or "Puu" -> set name to "PUU", role to "Protagonist".
   (The system maps this character to the core entity.)
2. EXTRACTION WEIGHTS:
   - Extract at least 1 male character (role: Antagonist or Supporting). Infer relationships.
   - Extract at least 1 location.
3. SECONDARY CHARACTERS will replace existing placeholders; mark them clearly.
4. SENTIMENT: Analyze interaction frequency and emotion for 'relationships'. Calculate intensity (0-100).

OUTPUT SCHEMA (JSON ONLY):
{
  "characters": [
    {
      "name": "string",
      "role": "Protagonist" | "Antagonist" | "Supporting",
      "worldview": "string",
      "race": "string",
      "characterClass": "string",
      "faction": "string",
      "description": "string (min 50 chars)",
      "appearance": "string",
      "tags": ["string"],
      "relationships": [ { "targetId": "unknown", "type": "string", "intensity": number } ]
    }
  ],
  "locations": [
    {
      "name": "string",
      "type": "string",
      "worldview": "string",
      "description": "string (include sensory details: light, smell, weather)",
      "history": "string",
      "culture": "string",
      "residents": []
    }
  ],
  "analysis_log": "Explain why specific characters were chosen."
}`

// DefaultModel is the Gemini model used for extraction.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single extraction call. A hung call must not hang
// the import flow indefinitely.
const DefaultTimeout = 2 * time.Minute

// GeminiConfig configures a GeminiExtractor.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiExtractor calls the Gemini API in JSON mode.
type GeminiExtractor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

// NewGemini creates a Gemini-backed extractor.
func NewGemini(ctx context.Context, cfg GeminiConfig, log *zap.Logger) (*GeminiExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiExtractor{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}, nil
}

// Extract sends the capped source text to the model and decodes the JSON
// batch it returns.
func (g *GeminiExtractor) Extract(ctx context.Context, rawText string) (*lore.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	capped := capSource(rawText)
	g.log.Info("extraction started",
		zap.String("model", g.model),
		zap.Int("source_bytes", len(rawText)),
		zap.Int("sent_bytes", len(capped)))

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(extractionPrompt),
		genai.NewPartFromText("SOURCE TEXT:\n" + capped),
	}, genai.RoleUser)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	result, err := decodeResult([]byte(resp.Text()))
	if err != nil {
		return nil, err
	}

	g.log.Info("extraction complete",
		zap.Int("characters", len(result.Characters)),
		zap.Int("locations", len(result.Locations)))
	return result, nil
}

// decodeResult parses the model's JSON payload into an extraction batch.
func decodeResult(data []byte) (*lore.ExtractionResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("extraction returned an empty response")
	}
	var result lore.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction payload: %w", err)
	}
	return &result, nil
}
