package stt

import (
	"log/slog"
	"time"
)

// Config holds STT dialer configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Provider credentials
	APIKey  string
	BaseURL string

	// Model is the transcription model.
	Model string

	// SmartFormat enables punctuation and formatting in transcripts.
	SmartFormat bool

	// DialTimeout bounds the WebSocket handshake.
	DialTimeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the STT dialer.
type Option func(*Config)

// WithAPIKey sets the API key for the provider.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithBaseURL overrides the default WebSocket base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithModel sets the transcription model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithSmartFormat toggles transcript formatting.
func WithSmartFormat(enabled bool) Option {
	return func(c *Config) { c.SmartFormat = enabled }
}

// WithDialTimeout sets the handshake timeout.
func WithDialTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.DialTimeout = timeout }
}

// WithLogger sets the structured logger for the dialer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:       "nova-2",
		SmartFormat: true,
		DialTimeout: 10 * time.Second,
		Logger:      slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	return nil
}
