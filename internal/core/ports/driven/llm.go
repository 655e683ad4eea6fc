package driven

import "context"

// GenerateOptions configures a single LLM generation call.
type GenerateOptions struct {
	// System is the system prompt, empty for none.
	System string

	// MaxTokens caps the response length. Zero uses the adapter default.
	MaxTokens int

	// Temperature controls sampling randomness. Zero uses the adapter
	// default.
	Temperature float64
}

// LLMService produces answers from prompts. It is a thin collaborator: the
// retrieval pipeline works without it, only answer generation is disabled.
type LLMService interface {
	// Generate produces a text completion for the prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the model identifier in use.
	ModelName() string

	// Close releases resources.
	Close() error
}
