// Package tts provides a unified interface for text-to-speech providers.
//
// The shipped backend is Deepgram Aura over HTTP. All providers implement the
// Provider interface, enabling switching without changing caller code.
//
// Example usage:
//
//	provider, _ := tts.NewDeepgram(
//	    tts.WithAPIKey(os.Getenv("DEEPGRAM_API_KEY")),
//	)
//	defer provider.Close()
//
//	audio, _ := provider.Synthesize(ctx, "Hello world")
package tts

import "context"

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio buffer.
	// The byte format is whatever the backend produces; no contract is
	// enforced on it.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}
