package main

import (
	"os"
	"testing"

	"github.com/jonathan/novelty-score/internal/config"
)

// TestMain clears the scoring service variables from the shell so every
// command under test sees only the flags and files it is given.
func TestMain(m *testing.M) {
	for _, key := range []string{
		config.EnvAPIURL,
		config.EnvTimeout,
		config.EnvVerbose,
		config.EnvIngestConcurrency,
		config.EnvPort,
	} {
		_ = os.Unsetenv(key)
	}

	os.Exit(m.Run())
}
