// Package ports defines the interfaces between the matching engine and
// its infrastructure: the LLM transport that backs both oracles and the
// metrics sink. Implementations live under infrastructure/.
package ports

import "context"

// LLMClient is the transport used to reach the semantic oracles.
// Implementations handle provider-specific authentication, request
// formatting and response extraction; callers only see prompt in,
// text out.
type LLMClient interface {
	// Complete sends a prompt and returns the raw generated text.
	// The options map carries provider-agnostic request parameters:
	//   - "temperature": float64
	//   - "max_tokens":  int
	//   - "response_format": provider-specific structured-output hint
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// EstimateTokens approximates the token count of a text, used to
	// keep batch payloads inside the provider's practical budget.
	EstimateTokens(text string) (int, error)

	// GetModel returns the configured model identifier, for logging.
	GetModel() string
}
