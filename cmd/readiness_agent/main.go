// Package main provides the readiness_agent CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/placement-readiness/internal/checklist"
	"github.com/jonathan/placement-readiness/internal/config"
	"github.com/jonathan/placement-readiness/internal/history"
	"github.com/jonathan/placement-readiness/internal/logger"
	"github.com/jonathan/placement-readiness/internal/storage"
)

var (
	configPath string
	storageURL string
	logLevel   string

	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:               "readiness_agent",
	Short:             "Placement readiness analysis for job descriptions",
	Long:              "readiness_agent extracts skills from a job description, scores your readiness, builds a preparation plan and keeps a local history of analyses.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&storageURL, "storage", "", "Storage URL (file://dir, sqlite://path, postgres://..., redis://..., memory://)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup resolves configuration and installs the logger for every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath, config.Config{StorageURL: storageURL, LogLevel: logLevel})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig = cfg

	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}

// stores are the persisted collections over one open backend.
type stores struct {
	backend   storage.Backend
	history   *history.Store
	checklist *checklist.Store
}

func openStores(ctx context.Context) (*stores, error) {
	backend, err := storage.Open(ctx, appConfig.StorageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	log := *logger.Ctx(ctx)
	return &stores{
		backend: backend,
		history: history.New(backend,
			history.WithKey(appConfig.HistoryKey),
			history.WithLimit(appConfig.HistoryLimit),
			history.WithLogger(log),
		),
		checklist: checklist.New(backend, checklist.WithKey(appConfig.ChecklistKey), checklist.WithLogger(log)),
	}, nil
}

func (s *stores) Close() {
	if err := s.backend.Close(); err != nil {
		logger.Logger.Warn().Err(err).Msg("failed to close storage")
	}
}
