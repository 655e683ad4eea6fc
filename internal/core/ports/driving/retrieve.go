package driving

import (
	"context"

	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

// Retriever answers similarity queries and renders citation-friendly context.
type Retriever interface {
	// Retrieve returns the topK most similar stored records, most similar
	// first. topK <= 0 fails with domain.ErrInvalidInput.
	Retrieve(ctx context.Context, query string, topK int) ([]driven.SearchHit, error)

	// FormatContext renders hits as numbered, source-attributed blocks in
	// rank order. An empty result set formats to an empty string, which
	// downstream generation treats as "no context available".
	FormatContext(hits []driven.SearchHit) string
}

// Asker runs the full question-answering pipeline: retrieve then generate.
type Asker interface {
	// Ask retrieves context for the question and generates an answer.
	Ask(ctx context.Context, question string, topK int) (*Answer, error)
}

// Answer is a generated response together with the hits that grounded it.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Hits are the retrieved records the answer was grounded on.
	Hits []driven.SearchHit
}
