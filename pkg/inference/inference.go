// Package inference provides a chat-completion client for OpenAI-compatible APIs.
//
// The default configuration targets Groq, but any endpoint speaking the
// /chat/completions protocol (OpenAI, Ollama, vLLM, Together) works by
// overriding the base URL.
//
// Example usage:
//
//	client, _ := inference.NewClient(
//	    inference.WithAPIKey(os.Getenv("GROQ_API_KEY")),
//	    inference.WithModel("llama-3.3-70b-versatile"),
//	)
//	defer client.Close()
//
//	resp, _ := client.Chat(ctx, &inference.ChatRequest{
//	    Messages: []inference.Message{
//	        {Role: inference.RoleUser, Content: "Hello!"},
//	    },
//	})
package inference

import "context"

// Provider is the chat-completion interface.
// All implementations must satisfy this interface.
type Provider interface {
	// Chat generates a response from a sequence of messages.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// ResponseFormat constrains the shape of the model output.
type ResponseFormat string

const (
	// FormatText is the default free-form output.
	FormatText ResponseFormat = "text"

	// FormatJSON forces the model to emit a single JSON object.
	FormatJSON ResponseFormat = "json_object"
)

// ChatRequest for chat completions.
type ChatRequest struct {
	// Messages is the conversation history.
	Messages []Message

	// Model overrides the default model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0). The zero value is sent
	// as-is, so deterministic routing calls stay deterministic.
	Temperature float64

	// ResponseFormat constrains output shape ("" means text).
	ResponseFormat ResponseFormat
}

// ChatResponse from chat completion.
type ChatResponse struct {
	// Message is the assistant's response.
	Message Message

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption for billing and limits.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
