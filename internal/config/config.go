// Package config loads the exporter's configuration from the environment.
//
// A .env file in the working directory is merged in first (without
// overriding variables already set in the environment). Invalid values are
// startup-time fatal errors; nothing here is re-read during a run.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/askeland/fsra-register/internal/logger"
	"github.com/joho/godotenv"
)

// Environment variables, with defaults in parentheses.
const (
	EnvBaseURL         = "FSRA_BASE_URL"         // register origin (https://www.adgm.com)
	EnvTimeout         = "FSRA_TIMEOUT"          // per-request timeout (10s)
	EnvOutputPath      = "FSRA_OUTPUT"           // CSV destination (fsra_public_register.csv)
	EnvUserAgent       = "FSRA_USER_AGENT"       // User-Agent header
	EnvMaxPages        = "FSRA_MAX_PAGES"        // pagination safety cap (500)
	EnvRetries         = "FSRA_RETRIES"          // fetch retries on transient errors (5)
	EnvRequestInterval = "FSRA_REQUEST_INTERVAL" // spacing between requests (500ms)
	EnvAliasFile       = "FSRA_ALIAS_FILE"       // optional YAML name-override file
	EnvNtfyURL         = "NTFY_URL"              // optional ntfy topic URL
)

// Config is the resolved runtime configuration.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	OutputPath      string
	UserAgent       string
	MaxPages        int
	Retries         int
	RequestInterval time.Duration
	AliasFile       string
	NtfyURL         string
}

// Load reads a .env file if present, then resolves the configuration from
// the environment. Returns an error on any unparseable value.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file", nil)
	}

	cfg := &Config{
		BaseURL:    getString(EnvBaseURL, "https://www.adgm.com"),
		OutputPath: getString(EnvOutputPath, "fsra_public_register.csv"),
		UserAgent:  getString(EnvUserAgent, ""),
		AliasFile:  getString(EnvAliasFile, ""),
		NtfyURL:    getString(EnvNtfyURL, ""),
	}

	var err error
	if cfg.Timeout, err = getDuration(EnvTimeout, 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestInterval, err = getDuration(EnvRequestInterval, 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.MaxPages, err = getInt(EnvMaxPages, 500); err != nil {
		return nil, err
	}
	if cfg.Retries, err = getInt(EnvRetries, 5); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s must not be empty", EnvBaseURL)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("%s must not be empty", EnvOutputPath)
	}
	return cfg, nil
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}
