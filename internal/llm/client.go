package llm

import "context"

// MaxOutputTokens is the output budget applied to every completion request.
const MaxOutputTokens = 4096

// Client is an abstraction over LLM providers. Every request is a single
// user turn with an explicit system directive; no conversation history is kept.
type Client interface {
	// Generate sends prompt to the named model and returns the raw text response.
	Generate(ctx context.Context, model, prompt, system string) (string, error)
}
