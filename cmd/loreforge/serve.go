package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entityentitled101/loreforge/pkg/api"
	"github.com/entityentitled101/loreforge/pkg/config"
	"github.com/entityentitled101/loreforge/pkg/extract"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API server",
	Long: `Serve the store operations and the batch import flow over HTTP for UI
clients. Binds to localhost by default; Prometheus metrics are exposed
at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var extractor extract.Extractor
		if apiKey := config.APIKey(); apiKey != "" {
			gemini, err := extract.NewGemini(cmd.Context(), extract.GeminiConfig{
				APIKey:  apiKey,
				Model:   appCfg.Gemini.Model,
				Timeout: appCfg.GeminiTimeout(),
			}, logger)
			if err != nil {
				return err
			}
			extractor = gemini
		} else if !opts.Quiet {
			fmt.Println("GEMINI_API_KEY not set; the import endpoint will be unavailable")
		}

		return api.StartServer(loreStore, extractor, api.ServerConfig{
			Port: appCfg.Port,
			Bind: appCfg.Bind,
		}, logger)
	},
}
