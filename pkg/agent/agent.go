// Package agent holds the LLM-facing half of the analyst: intent routing for
// finalized utterances and natural-language synthesis of investor briefings.
//
// Both halves speak through an inference.Provider; the prompts pin the model
// to the persona of Eva, a senior Wall Street analyst.
package agent

// Fixed replies used by the session pipeline.
const (
	// DefaultChatReply is spoken when a chat intent carries no response text.
	DefaultChatReply = "I am listening. Please proceed."

	// ParseErrorReply is spoken when intent classification produced
	// unusable output.
	ParseErrorReply = "System encountered a parsing error."
)

// systemPrompt pins the model to the analyst persona and the two-shape
// intent contract.
const systemPrompt = `
You are 'Eva', a Senior Wall Street Analyst.
1. INTENT ROUTING: If user requests stock analysis, output JSON: {"action": "analyze_stock", "symbol": "AAPL"}
2. CONVERSATIONAL ROUTING: For general inquiries, output JSON: {"action": "chat", "response": "Your reply here."}
3. BEHAVIORAL MODULATION:
   - Adjust tone based on the provided User Mood metrics.
   - Maintain a highly professional, concise, and data-driven persona.
4. SCOPE: If the user asks about topics unrelated to finance, business, or the economy, politely pivot back to your role as an analyst.
`

// briefingPrompt is the synthesis template. It demands the spoken-contract
// phrasing: dollar-suffixed prices, the upside percentage, and the
// "Analysis for <Company>..." opener. The output is trusted, not validated.
const briefingPrompt = `
RAW DATA: %s
CURRENT MOOD METRIC: %s

TASK: Synthesize this financial data into 2 spoken sentences for an investor briefing.
STRICT REQUIREMENTS:
1. Explicitly state 'Current Price' and 'Target Price' (append "dollars").
2. Explicitly state 'Upside Potential' percentage.
3. Initiate response with: "Analysis for [Company Name]..."
`
