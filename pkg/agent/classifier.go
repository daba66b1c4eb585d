package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voxfin/go-voxfin/pkg/inference"
	"github.com/voxfin/go-voxfin/pkg/sentiment"
)

// Classifier routes an utterance to an Intent via a constrained completion.
type Classifier struct {
	llm    inference.Provider
	logger *slog.Logger
}

// NewClassifier creates a classifier over the given provider.
// A nil logger uses the default.
func NewClassifier(llm inference.Provider, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		llm:    llm,
		logger: logger.With("component", "agent.classifier"),
	}
}

// Classify decides what to do with one finalized transcript.
// Temperature 0 and JSON response format keep the routing deterministic;
// output matching neither documented shape returns a ParsingError.
func (c *Classifier) Classify(ctx context.Context, transcript string, mood sentiment.Mood) (*Intent, error) {
	resp, err := c.llm.Chat(ctx, &inference.ChatRequest{
		Messages: []inference.Message{
			inference.NewSystemMessage(systemPrompt),
			inference.NewUserMessage(fmt.Sprintf("Mood: %s. User: %s", mood, transcript)),
		},
		Temperature:    0,
		ResponseFormat: inference.FormatJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("agent: classify: %w", err)
	}

	intent, err := ParseIntent(resp.Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("classified intent",
		"action", intent.Action,
		"symbol", intent.Symbol,
	)
	return intent, nil
}
