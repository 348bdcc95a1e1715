// Package config loads and saves the LoreForge configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// apiKeyEnv names the environment variable holding the Gemini credential.
// The credential belongs to the extraction collaborator, not to the core.
const apiKeyEnv = "GEMINI_API_KEY"

// Config represents the LoreForge configuration.
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Port    int     `yaml:"port"`
	Bind    string  `yaml:"bind"`
	Gemini  Gemini  `yaml:"gemini"`
	Logging Logging `yaml:"logging"`
}

// Gemini contains extraction-collaborator configuration.
type Gemini struct {
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8600,
		Bind:    "127.0.0.1",
		Gemini: Gemini{
			Model:          "gemini-2.5-flash",
			TimeoutSeconds: 120,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load loads configuration from the specified path.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to the specified path.
func Save(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadOrDefault loads the config at path, falling back to defaults when the
// file does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(configPath)
}

// DefaultPath returns the default configuration path for the current
// platform.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./loreforge.yaml"
	}
	return filepath.Join(homeDir, ".config", "loreforge", "config.yaml")
}

// GeminiTimeout returns the configured extraction timeout.
func (c *Config) GeminiTimeout() time.Duration {
	if c.Gemini.TimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}

// APIKey resolves the Gemini credential from the environment. A local .env
// file is honored when present.
func APIKey() string {
	_ = godotenv.Load()
	return os.Getenv(apiKeyEnv)
}

// NewLogger builds a zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
