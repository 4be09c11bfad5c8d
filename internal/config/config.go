// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/novelty-score/internal/client"
	"github.com/jonathan/novelty-score/internal/ingest"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL            = "NOVELTY_API_URL"
	EnvTimeout           = "NOVELTY_TIMEOUT"
	EnvVerbose           = "NOVELTY_VERBOSE"
	EnvIngestConcurrency = "NOVELTY_INGEST_CONCURRENCY"
	EnvPort              = "NOVELTY_PORT"
)

// DefaultPort is the port of the local web UI.
const DefaultPort = 3000

// Duration is a time.Duration written as a Go duration string in JSON ("90s").
type Duration time.Duration

// UnmarshalJSON parses "90s"-style strings or plain seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string like \"90s\" or a number of seconds")
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	APIURL            string   `json:"api_url,omitempty" validate:"omitempty,url"`           // Scoring service API root
	Timeout           Duration `json:"timeout,omitempty" validate:"gte=0"`                   // Per-request timeout
	Verbose           bool     `json:"verbose,omitempty"`                                    // Log requests and timings
	IngestConcurrency int      `json:"ingest_concurrency,omitempty" validate:"gte=0,lte=16"` // Parallel uploads when ingesting several documents
	Port              int      `json:"port,omitempty" validate:"gte=0,lte=65535"`            // Local web UI port
}

// Error is a configuration problem.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:            client.DefaultBaseURL,
		Timeout:           Duration(client.DefaultTimeout),
		IngestConcurrency: ingest.DefaultConcurrency,
		Port:              DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave the field at its zero value; a malformed one is an *Error naming it.
func FromEnv() (Config, error) {
	var r envReader
	cfg := Config{
		APIURL:            r.str(EnvAPIURL),
		Timeout:           Duration(r.duration(EnvTimeout)),
		Verbose:           r.boolean(EnvVerbose),
		IngestConcurrency: r.integer(EnvIngestConcurrency),
		Port:              r.integer(EnvPort),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

// Resolve builds the effective configuration: the file at path (if any)
// over the environment over the defaults.
func Resolve(path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	base := env.MergeWithDefaults(Defaults())

	cfg := base
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return Config{}, &Error{Message: "cannot load config file", Cause: err}
		}
		cfg = fileCfg.MergeWithDefaults(base)
		cfg.Verbose = fileCfg.Verbose || base.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' fails %s", jsonName(fe.Field()), fe.Tag()))
			}
			return &Error{Message: strings.Join(msgs, "; "), Cause: err}
		}
		return &Error{Message: "invalid configuration", Cause: err}
	}

	if c.APIURL != "" && !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return &Error{Message: fmt.Sprintf("'api_url' must use http or https: %s", c.APIURL)}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.IngestConcurrency == 0 {
		result.IngestConcurrency = defaults.IngestConcurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ClientOptions converts the configuration into transport client options.
func (c *Config) ClientOptions() *client.Options {
	opts := client.DefaultOptions()
	if c.APIURL != "" {
		opts.BaseURL = c.APIURL
	}
	if c.Timeout > 0 {
		opts.Timeout = time.Duration(c.Timeout)
	}
	opts.Verbose = c.Verbose
	return opts
}

// IngestOptions converts the configuration into ingest workflow options.
func (c *Config) IngestOptions() *ingest.Options {
	return &ingest.Options{
		Concurrency: c.IngestConcurrency,
		Verbose:     c.Verbose,
	}
}

func jsonName(field string) string {
	switch field {
	case "APIURL":
		return "api_url"
	case "Timeout":
		return "timeout"
	case "IngestConcurrency":
		return "ingest_concurrency"
	case "Port":
		return "port"
	default:
		return field
	}
}
