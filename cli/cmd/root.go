package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cubeworks/cubeinsight/internal/ai"
	"github.com/cubeworks/cubeinsight/internal/config"
	"github.com/cubeworks/cubeinsight/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "cubeinsight",
	Short: "Natural-language analytics over construction EVMS data",
	Long: `CUBE Insight answers natural-language questions about a construction
project's EVMS dataset. Questions are translated to read-only SQL by an
external model when a credential is configured, with preset and
keyword-based fallbacks that keep every question answerable offline.

Configuration comes from CUBEINSIGHT_* environment variables or a .env
file, e.g.:

  CUBEINSIGHT_DATASET_PATH=./data/evms.db
  CUBEINSIGHT_MODEL_CREDENTIAL=<api key>
  CUBEINSIGHT_SERVER_ADDRESS=:8080`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
}

// setup loads configuration, configures logging, opens the dataset and
// builds the resolver shared by every command.
func setup() (*config.Config, *database.SQLiteStore, *ai.Resolver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	store, err := database.Open(cfg.Dataset.Path)
	if err != nil {
		return nil, nil, nil, err
	}

	client := ai.NewClient(ai.ClientConfig{
		Credential:  cfg.Model.Credential,
		Model:       cfg.Model.Name,
		BaseURL:     cfg.Model.BaseURL,
		Temperature: cfg.Model.Temperature,
		MaxTokens:   cfg.Model.MaxTokens,
		Timeout:     cfg.Model.Timeout,
	})

	return cfg, store, ai.NewResolver(store, client), nil
}
