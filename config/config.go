// Package config loads the application configuration from the environment
// into an explicit struct, so the core never reads ambient process state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/zoobzio/textops"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultModel     = "gpt-4-turbo-preview"
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultOutputDir = "output"
	DefaultTimeout   = 60 * time.Second
)

// Config carries everything the application needs to run.
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	OutputDir string
	Timeout   time.Duration
}

// Load reads configuration from the environment, after filling in any unset
// variables from a .env file in the working directory. A missing API key is a
// credential error with a remediation hint, reported before any call is
// attempted.
func Load() (*Config, error) {
	// Absent .env is fine; real environment variables always win.
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set OPENAI_API_KEY in the environment or your .env file", textops.ErrMissingCredential)
	}

	timeout := DefaultTimeout
	if raw := os.Getenv("OPENAI_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("OPENAI_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		timeout = time.Duration(seconds) * time.Second
	}

	return &Config{
		APIKey:    apiKey,
		Model:     getEnv("OPENAI_MODEL", DefaultModel),
		BaseURL:   getEnv("OPENAI_BASE_URL", DefaultBaseURL),
		OutputDir: getEnv("TEXTOPS_OUTPUT_DIR", DefaultOutputDir),
		Timeout:   timeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
