package services

import (
	"context"
	"fmt"

	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// systemPrompt grounds the model in the knowledge-base assistant role and
// the numbered-citation convention used by FormatContext.
const systemPrompt = `You are a helpful assistant that answers questions about building RAG (Retrieval-Augmented Generation) systems.

Use the provided context to answer questions accurately. When citing information:
- Reference the source numbers [1], [2], etc. when applicable
- Be specific and technical when the context supports it
- Acknowledge limitations in the provided context

If the context doesn't contain enough information to answer the question, say so clearly and explain what additional information would be needed.`

// Ensure AskService implements the interface.
var _ driving.Asker = (*AskService)(nil)

// AskService runs the full question-answering pipeline: retrieve context,
// build a grounded prompt, generate an answer.
type AskService struct {
	retriever driving.Retriever
	llm       driven.LLMService
	trace     logger.Tracer
}

// NewAskService creates an ask service.
func NewAskService(retriever driving.Retriever, llm driven.LLMService) *AskService {
	return &AskService{
		retriever: retriever,
		llm:       llm,
		trace:     logger.Pipeline("ask"),
	}
}

// Ask retrieves context for the question and generates an answer grounded
// in it. With no relevant context the model is asked to answer from general
// knowledge and say so.
func (s *AskService) Ask(ctx context.Context, question string, topK int) (*driving.Answer, error) {
	hits, err := s.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(question, s.retriever.FormatContext(hits))

	s.trace.Debug("Prompt length: %d chars, %d context hits", len(prompt), len(hits))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{System: systemPrompt})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &driving.Answer{Text: text, Hits: hits}, nil
}

// BuildPrompt assembles the user prompt from the question and the formatted
// retrieval context. An empty context produces a fallback prompt that tells
// the model the knowledge base had nothing relevant.
func BuildPrompt(question, context string) string {
	if context == "" {
		return fmt.Sprintf(`Question: %s

Note: No relevant context was found in the knowledge base. Please answer based on general knowledge, but indicate that this is not from the RAG corpus.`, question)
	}

	return fmt.Sprintf(`Context from knowledge base:
%s

---

Question: %s

Please answer based on the context above. Cite sources using [1], [2], etc. when referencing specific information.`, context, question)
}
