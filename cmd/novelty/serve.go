package main

import (
	"fmt"
	"time"

	"github.com/jonathan/novelty-score/internal/client"
	"github.com/jonathan/novelty-score/internal/config"
	"github.com/jonathan/novelty-score/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web UI",
	Long:  `Start an HTTP server with pages for checking proposal novelty and ingesting proposals.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 3000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(serverConfig(cfg, servePort))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// serverConfig builds the web UI configuration; a non-zero port overrides cfg.Port.
func serverConfig(cfg config.Config, port int) server.Config {
	if port == 0 {
		port = cfg.Port
	}
	return server.Config{
		Port:    port,
		Timeout: time.Duration(cfg.Timeout),
		Client:  client.New(cfg.ClientOptions()),
		Ingest:  cfg.IngestOptions(),
	}
}
