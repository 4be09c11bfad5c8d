// Package main provides the entry point for the novelty score CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonathan/novelty-score/internal/client"
	"github.com/jonathan/novelty-score/internal/config"
	"github.com/jonathan/novelty-score/internal/novelty"
	"github.com/jonathan/novelty-score/internal/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "novelty",
	Short:         "R&D proposal novelty scoring client",
	Long:          "Check how novel an R&D proposal is against the scoring service's corpus, add proposals to that corpus, and browse results in a local web UI.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	apiURL     string
	timeout    string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Scoring service API root (overrides "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "Per-request timeout, e.g. 90s")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and timings")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints the user-facing message for err.
func reportError(w io.Writer, err error) {
	observability.NewPrinter(w).PrintError(novelty.Message(err))
}

// loadConfig resolves the config file, environment and defaults, then
// applies the global flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return config.Config{}, &config.Error{Message: "invalid --timeout", Cause: err}
		}
		cfg.Timeout = config.Duration(d)
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newClient builds a scoring service client from the resolved configuration.
func newClient() (*client.Client, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	return client.New(cfg.ClientOptions()), cfg, nil
}
