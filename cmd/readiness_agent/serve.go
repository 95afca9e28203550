package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-readiness/internal/logger"
	"github.com/jonathan/placement-readiness/internal/server"
	"github.com/jonathan/placement-readiness/internal/storage"
)

var (
	servePort       int
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes analysis history, confidence updates and the test checklist over REST.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render thin job pages in headless Chrome")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	port := appConfig.Port
	if servePort > 0 {
		port = servePort
	}

	backend, err := storage.Open(ctx, appConfig.StorageURL)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer backend.Close()

	srv, err := server.New(server.Config{
		Port:         port,
		Backend:      backend,
		HistoryKey:   appConfig.HistoryKey,
		HistoryLimit: appConfig.HistoryLimit,
		ChecklistKey: appConfig.ChecklistKey,
		UseBrowser:   serveUseBrowser || appConfig.UseBrowser,
		Logger:       *logger.Ctx(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
