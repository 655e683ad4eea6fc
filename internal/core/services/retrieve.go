package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// DefaultTopK is the number of results retrieved when the caller does not
// specify one.
const DefaultTopK = 5

// Ensure RetrieveService implements the interface.
var _ driving.Retriever = (*RetrieveService)(nil)

// RetrieveService answers similarity queries against the vector store.
type RetrieveService struct {
	store driven.VectorStore
	trace logger.Tracer
}

// NewRetrieveService creates a retrieve service.
func NewRetrieveService(store driven.VectorStore) *RetrieveService {
	return &RetrieveService{
		store: store,
		trace: logger.Pipeline("retrieve"),
	}
}

// Retrieve returns the topK most similar records, most similar first.
func (s *RetrieveService) Retrieve(ctx context.Context, query string, topK int) ([]driven.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	s.trace.Debug("Retrieving top %d for %q", topK, query)
	hits, err := s.store.Query(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	s.trace.Debug("Retrieved %d hits", len(hits))
	return hits, nil
}

// FormatContext renders hits as numbered, source-attributed blocks in rank
// order, separated by horizontal rules. No hits formats to an empty string.
func (s *RetrieveService) FormatContext(hits []driven.SearchHit) string {
	if len(hits) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(hits))
	for i, hit := range hits {
		source := hit.Metadata.Source
		if source == "" {
			source = "unknown"
		}
		blocks = append(blocks, fmt.Sprintf("[%d] (Source: %s)\n%s", i+1, source, hit.Text))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// Sources returns the unique source identifiers of the hits, in first-seen
// rank order.
func Sources(hits []driven.SearchHit) []string {
	seen := make(map[string]struct{}, len(hits))
	var sources []string
	for _, hit := range hits {
		source := hit.Metadata.Source
		if source == "" {
			source = "unknown"
		}
		if _, ok := seen[source]; ok {
			continue
		}
		seen[source] = struct{}{}
		sources = append(sources, source)
	}
	return sources
}
