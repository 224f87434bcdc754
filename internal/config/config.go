// Package config loads application settings from environment variables
// and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"` // Listen address (default: :8080)
}

// DatasetConfig contains the project dataset settings
type DatasetConfig struct {
	Path string `mapstructure:"path"` // Path to the SQLite dataset file
}

// ModelConfig contains the external model settings
type ModelConfig struct {
	Credential  string        `mapstructure:"credential"`   // API key; empty disables the external tier
	Name        string        `mapstructure:"name"`         // Preferred model (default: gemini-2.5-flash-lite)
	BaseURL     string        `mapstructure:"base_url"`     // generateContent endpoint prefix
	Temperature float64       `mapstructure:"temperature"`  // Sampling temperature for the query pass
	MaxTokens   int           `mapstructure:"max_tokens"`   // maxOutputTokens per request
	Timeout     time.Duration `mapstructure:"timeout"`      // Per-request timeout; 0 disables
}

// Config is the root application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Model   ModelConfig   `mapstructure:"model"`
	LogLevel string       `mapstructure:"log_level"`
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required (set CUBEINSIGHT_DATASET_PATH)")
	}
	if c.Model.BaseURL == "" {
		return fmt.Errorf("model base_url cannot be empty")
	}
	if c.Model.MaxTokens < 1 {
		return fmt.Errorf("model max_tokens must be at least 1, got: %d", c.Model.MaxTokens)
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("model temperature must be between 0 and 2, got: %v", c.Model.Temperature)
	}
	if c.Model.Timeout < 0 {
		return fmt.Errorf("model timeout cannot be negative, got: %v", c.Model.Timeout)
	}
	return nil
}

// Load reads configuration from the environment with the CUBEINSIGHT_
// prefix, e.g. CUBEINSIGHT_MODEL_CREDENTIAL maps to model.credential.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("dataset.path", "")
	v.SetDefault("model.credential", "")
	v.SetDefault("model.name", "gemini-2.5-flash-lite")
	v.SetDefault("model.base_url", "https://generativelanguage.googleapis.com/v1beta/models/")
	v.SetDefault("model.temperature", 0.1)
	v.SetDefault("model.max_tokens", 8192)
	v.SetDefault("model.timeout", 60*time.Second)
	v.SetDefault("log_level", "info")

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		// Missing .env is the normal case.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.SetEnvPrefix("CUBEINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
