package mcp

import (
	"context"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
)

// mockRetriever implements driving.Retriever with canned hits.
type mockRetriever struct {
	hits     []driven.SearchHit
	err      error
	lastTopK int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, topK int) ([]driven.SearchHit, error) {
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

func (m *mockRetriever) FormatContext([]driven.SearchHit) string { return "" }

// mockAsker implements driving.Asker with a canned answer.
type mockAsker struct {
	answer *driving.Answer
	err    error
}

func (m *mockAsker) Ask(context.Context, string, int) (*driving.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

// mockStore implements only the stats portion meaningfully.
type mockStore struct {
	stats driven.StoreStats
	err   error
}

func (m *mockStore) Add(context.Context, []domain.Record) error    { return nil }
func (m *mockStore) Upsert(context.Context, []domain.Record) error { return nil }

func (m *mockStore) Query(context.Context, string, int) ([]driven.SearchHit, error) {
	return nil, nil
}

func (m *mockStore) Get(context.Context, string) (*driven.SearchHit, error) {
	return nil, domain.ErrNotFound
}

func (m *mockStore) DeleteBySource(context.Context, string) error { return nil }

func (m *mockStore) Stats(context.Context) (driven.StoreStats, error) {
	return m.stats, m.err
}

func (m *mockStore) Close() error { return nil }
