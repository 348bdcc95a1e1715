package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entityentitled101/loreforge/pkg/config"
	"github.com/entityentitled101/loreforge/pkg/extract"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "AI-assisted bulk import from a text or markdown file",
	Long: `Parse a free-form source file into structured character and location
records via the Gemini API and merge them into the collections.

The GEMINI_API_KEY environment variable must be set (a .env file is
honored). Markdown files are flattened to plain text before extraction.

Examples:
  loreforge import chapter1.txt
  loreforge import notes.md --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read source file: %w", err)
		}

		text := string(raw)
		if strings.EqualFold(filepath.Ext(args[0]), ".md") {
			text, err = extract.FlattenMarkdown(raw)
			if err != nil {
				return fmt.Errorf("failed to flatten markdown: %w", err)
			}
		}

		apiKey := config.APIKey()
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is not set")
		}

		ctx := cmd.Context()
		extractor, err := extract.NewGemini(ctx, extract.GeminiConfig{
			APIKey:  apiKey,
			Model:   appCfg.Gemini.Model,
			Timeout: appCfg.GeminiTimeout(),
		}, logger)
		if err != nil {
			return err
		}

		if !opts.Quiet {
			fmt.Printf("Extracting entities from '%s'...\n", args[0])
		}

		result, err := extractor.Extract(ctx, text)
		if err != nil {
			return fmt.Errorf("import aborted: %w", err)
		}

		if result.AnalysisLog != "" && !opts.Quiet {
			fmt.Printf("Analysis: %s\n", result.AnalysisLog)
		}

		if dryRun {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		}

		summary, err := loreStore.ImportBatch(result)
		if err != nil {
			return err
		}

		if !opts.Quiet {
			fmt.Printf("Import complete: core merged: %v, matched: %d, placeholders replaced: %d, characters added: %d, locations merged: %d, locations added: %d\n",
				summary.CoreMerged, summary.CharactersMatched, summary.PlaceholdersReplaced,
				summary.CharactersAdded, summary.LocationsMerged, summary.LocationsAdded)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "print the extracted batch without merging it")
}
