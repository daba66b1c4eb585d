package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/voxfin/go-voxfin/pkg/inference"
	"github.com/voxfin/go-voxfin/pkg/marketdata"
	"github.com/voxfin/go-voxfin/pkg/sentiment"
)

// Synthesizer turns a market snapshot into spoken briefing text.
type Synthesizer struct {
	llm    inference.Provider
	logger *slog.Logger
}

// NewSynthesizer creates a synthesizer over the given provider.
// A nil logger uses the default.
func NewSynthesizer(llm inference.Provider, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		llm:    llm,
		logger: logger.With("component", "agent.synthesizer"),
	}
}

// Briefing generates the two-sentence investor briefing for snap.
// The price/target/upside phrasing is a prompt-level contract; the output
// is not structurally validated.
func (s *Synthesizer) Briefing(ctx context.Context, snap *marketdata.Snapshot, mood sentiment.Mood) (string, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("agent: marshal snapshot: %w", err)
	}

	resp, err := s.llm.Chat(ctx, &inference.ChatRequest{
		Messages: []inference.Message{
			inference.NewUserMessage(fmt.Sprintf(briefingPrompt, raw, mood)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("agent: briefing: %w", err)
	}

	s.logger.Debug("synthesized briefing",
		"symbol", snap.Symbol,
		"chars", len(resp.Message.Content),
	)
	return resp.Message.Content, nil
}
