package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

func TestAsk(t *testing.T) {
	store := newMemStore()
	store.hits = []driven.SearchHit{
		hit("a", "Chunk overlap helps continuity.", "guide.txt", 0.1),
	}
	llm := &fakeLLM{response: "Use overlap [1]."}

	svc := NewAskService(NewRetrieveService(store), llm)
	answer, err := svc.Ask(context.Background(), "why overlap chunks?", 3)
	require.NoError(t, err)

	assert.Equal(t, "Use overlap [1].", answer.Text)
	require.Len(t, answer.Hits, 1)

	assert.Equal(t, systemPrompt, llm.lastOpts.System)
	assert.Contains(t, llm.lastPrompt, "Context from knowledge base:")
	assert.Contains(t, llm.lastPrompt, "Chunk overlap helps continuity.")
	assert.Contains(t, llm.lastPrompt, "Question: why overlap chunks?")
}

func TestAsk_NoContext(t *testing.T) {
	llm := &fakeLLM{response: "From general knowledge only."}

	svc := NewAskService(NewRetrieveService(newMemStore()), llm)
	answer, err := svc.Ask(context.Background(), "what is RAG?", 3)
	require.NoError(t, err)

	assert.Empty(t, answer.Hits)
	assert.Contains(t, llm.lastPrompt, "No relevant context was found")
}

func TestAsk_RetrieveFailure(t *testing.T) {
	store := newMemStore()
	store.queryErr = fmt.Errorf("store offline")
	llm := &fakeLLM{}

	svc := NewAskService(NewRetrieveService(store), llm)
	_, err := svc.Ask(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Empty(t, llm.lastPrompt)
}

func TestAsk_GenerateFailure(t *testing.T) {
	llm := &fakeLLM{err: fmt.Errorf("api key rejected")}

	svc := NewAskService(NewRetrieveService(newMemStore()), llm)
	_, err := svc.Ask(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate answer")
}

func TestBuildPrompt(t *testing.T) {
	withContext := BuildPrompt("why?", "[1] (Source: a.txt)\nbecause")
	assert.Contains(t, withContext, "Context from knowledge base:")
	assert.Contains(t, withContext, "Cite sources using [1], [2], etc.")

	without := BuildPrompt("why?", "")
	assert.Contains(t, without, "No relevant context was found")
	assert.NotContains(t, without, "Context from knowledge base:")
}
