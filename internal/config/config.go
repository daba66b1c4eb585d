// Package config provides environment-driven configuration for voxfin.
// A Config is loaded once at startup and never mutated afterwards; every
// component receives the credentials it needs by value.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Defaults for optional settings.
const (
	DefaultPort     = "8000"
	DefaultLogLevel = "info"
)

// Config holds process-wide settings and provider credentials.
type Config struct {
	// DeepgramAPIKey authenticates both the live STT stream and speech synthesis.
	DeepgramAPIKey string

	// GroqAPIKey authenticates the chat-completion calls.
	GroqAPIKey string

	// Port is the HTTP listen port.
	Port string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment.
// It returns an error naming every required variable that is missing.
func Load() (*Config, error) {
	cfg := &Config{
		DeepgramAPIKey: os.Getenv("DEEPGRAM_API_KEY"),
		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		Port:           envOr("PORT", DefaultPort),
		LogLevel:       envOr("LOG_LEVEL", DefaultLogLevel),
	}

	var missing []string
	if cfg.DeepgramAPIKey == "" {
		missing = append(missing, "DEEPGRAM_API_KEY")
	}
	if cfg.GroqAPIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// envOr returns the value of the named variable, or the fallback if unset.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
