package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

func hit(id, text, source string, distance float64) driven.SearchHit {
	return driven.SearchHit{
		ID:       id,
		Text:     text,
		Metadata: domain.Metadata{Source: source, DocType: domain.DocTypeGuide},
		Distance: distance,
	}
}

func TestRetrieve(t *testing.T) {
	store := newMemStore()
	store.hits = []driven.SearchHit{
		hit("a", "first", "a.txt", 0.1),
		hit("b", "second", "b.txt", 0.3),
	}

	svc := NewRetrieveService(store)
	hits, err := svc.Retrieve(context.Background(), "how to chunk", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ID)
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	svc := NewRetrieveService(newMemStore())

	_, err := svc.Retrieve(context.Background(), "   ", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrieve_DefaultsTopK(t *testing.T) {
	store := newMemStore()
	svc := NewRetrieveService(store)

	// topK <= 0 falls back to the default rather than failing.
	_, err := svc.Retrieve(context.Background(), "anything", 0)
	require.NoError(t, err)
	_, err = svc.Retrieve(context.Background(), "anything", -3)
	require.NoError(t, err)
}

func TestFormatContext(t *testing.T) {
	svc := NewRetrieveService(newMemStore())

	out := svc.FormatContext([]driven.SearchHit{
		hit("a", "First block.", "guide.txt", 0.1),
		hit("b", "Second block.", "", 0.2),
	})

	assert.Contains(t, out, "[1] (Source: guide.txt)\nFirst block.")
	assert.Contains(t, out, "[2] (Source: unknown)\nSecond block.")
	assert.Contains(t, out, "\n\n---\n\n")
}

func TestFormatContext_Empty(t *testing.T) {
	svc := NewRetrieveService(newMemStore())
	assert.Equal(t, "", svc.FormatContext(nil))
}

func TestSources(t *testing.T) {
	sources := Sources([]driven.SearchHit{
		hit("a", "x", "guide.txt", 0.1),
		hit("b", "y", "paper.pdf", 0.2),
		hit("c", "z", "guide.txt", 0.3),
		hit("d", "w", "", 0.4),
	})
	assert.Equal(t, []string{"guide.txt", "paper.pdf", "unknown"}, sources)
}
