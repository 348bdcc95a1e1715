package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/entityentitled101/loreforge/pkg/config"
	"github.com/entityentitled101/loreforge/pkg/storage"
	"github.com/entityentitled101/loreforge/pkg/store"
)

// Global CLI options
type cliOptions struct {
	ConfigPath string
	DataDir    string
	Format     string
	Quiet      bool
	Yes        bool
}

// Global state shared by subcommands
var (
	opts      cliOptions
	appCfg    *config.Config
	logger    *zap.Logger
	adapter   *storage.Adapter
	loreStore *store.Store
	rootCmd   *cobra.Command
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "loreforge",
		Short: "LoreForge - Manage characters and locations for a fictional setting",
		Long: `A lore-management tool: create, edit, and browse characters and
locations, with an AI-assisted bulk import that parses free-form text
into structured records.

Examples:
  loreforge character list
  loreforge location create
  loreforge import chapter1.txt
  loreforge serve`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error

			configPath := opts.ConfigPath
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			appCfg, err = config.LoadOrDefault(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if opts.DataDir != "" {
				appCfg.DataDir = opts.DataDir
			}

			logger, err = appCfg.NewLogger()
			if err != nil {
				return err
			}

			adapter, err = storage.Open(appCfg.DataDir, logger)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}

			loreStore, err = store.New(adapter, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize store: %w", err)
			}

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				_ = logger.Sync()
			}
			if adapter != nil {
				return adapter.Close()
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&opts.DataDir, "data", "d", "", "path to data directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&opts.Format, "format", "o", "table", "output format (table or json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress non-essential messages")
	rootCmd.PersistentFlags().BoolVarP(&opts.Yes, "yes", "y", false, "assume 'yes' for prompts")

	// Add subcommands
	rootCmd.AddCommand(characterCmd)
	rootCmd.AddCommand(locationCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
}
