package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding variables are unset.
const (
	// DefaultModel is the Gemini model used for structuring receipt text.
	DefaultModel = "gemini-1.5-flash"

	// DefaultPort is the HTTP listen port.
	DefaultPort = 8000
)

// Config holds the process-wide configuration, read once at startup.
// It is never written after Load returns; every component receives it
// by pointer and treats it as read-only.
type Config struct {
	// GoogleAPIKey authenticates Gemini calls. Required.
	GoogleAPIKey string

	// CredentialsFile is an optional path to a service-account key file
	// for the Vision API (GOOGLE_APPLICATION_CREDENTIALS).
	CredentialsFile string

	// Discrete service-account fields, the alternative to CredentialsFile.
	// ClientID is optional even within this strategy.
	ProjectID   string
	PrivateKey  string
	ClientEmail string
	ClientID    string

	// Model is the Gemini model name used by the structuring agent.
	Model string

	// Port is the HTTP listen port.
	Port int

	// Debug enables debug-level logging.
	Debug bool
}

// Load reads configuration from the environment, loading a local .env
// file first when one is present. It fails when a required variable is
// missing or malformed.
func Load() (*Config, error) {
	// A missing .env is fine; deployed environments set variables directly.
	_ = godotenv.Load()

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing required environment variable GOOGLE_API_KEY")
	}

	cfg := &Config{
		GoogleAPIKey:    apiKey,
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ProjectID:       os.Getenv("GOOGLE_CLOUD_PROJECT_ID"),
		PrivateKey:      os.Getenv("GOOGLE_CLOUD_PRIVATE_KEY"),
		ClientEmail:     os.Getenv("GOOGLE_CLOUD_CLIENT_EMAIL"),
		ClientID:        os.Getenv("GOOGLE_CLOUD_CLIENT_ID"),
		Model:           DefaultModel,
		Port:            DefaultPort,
		Debug:           strings.EqualFold(os.Getenv("DEBUG"), "true"),
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Model = model
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}
