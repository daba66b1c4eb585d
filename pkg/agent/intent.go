package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Action discriminates the two intent variants.
type Action string

const (
	// ActionAnalyzeStock asks for a market-data briefing on a symbol.
	ActionAnalyzeStock Action = "analyze_stock"

	// ActionChat carries a ready conversational reply.
	ActionChat Action = "chat"
)

// defaultSymbol is used when the model routes to analysis without naming one.
const defaultSymbol = "AAPL"

// Intent is the routing decision for one utterance.
// Exactly one of Symbol (analyze_stock) or Response (chat) is meaningful.
type Intent struct {
	Action   Action `json:"action"`
	Symbol   string `json:"symbol,omitempty"`
	Response string `json:"response,omitempty"`
}

// ParsingError reports intent output that matched neither documented shape.
type ParsingError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *ParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("agent: malformed intent: %v", e.Err)
	}
	return fmt.Sprintf("agent: malformed intent: %q", e.Raw)
}

// Unwrap returns the underlying error, if any.
func (e *ParsingError) Unwrap() error {
	return e.Err
}

// IsParsingError reports whether err is (or wraps) a ParsingError.
func IsParsingError(err error) bool {
	var pe *ParsingError
	return errors.As(err, &pe)
}

// ParseIntent decodes raw model output into an Intent.
// Only the two documented shapes are accepted; anything else is a
// ParsingError, never a silent coercion into a third shape.
func ParseIntent(raw string) (*Intent, error) {
	var intent Intent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, &ParsingError{Raw: raw, Err: err}
	}

	switch intent.Action {
	case ActionAnalyzeStock:
		intent.Symbol = strings.ToUpper(strings.TrimSpace(intent.Symbol))
		if intent.Symbol == "" {
			intent.Symbol = defaultSymbol
		}
		return &intent, nil
	case ActionChat:
		return &intent, nil
	default:
		return nil, &ParsingError{Raw: raw}
	}
}
