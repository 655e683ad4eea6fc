package driven

import (
	"context"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

// VectorStore owns the embedding step and the persistent similarity index.
// It stores uniform records and retrieves them by cosine similarity.
//
// Identity contract: two records with the same id are the same logical chunk.
// Add has plain insert semantics and is not guaranteed to detect an existing
// id; Upsert overwrites in place and is the idempotent re-ingestion path.
// Callers that may write an id twice must use Upsert.
type VectorStore interface {
	// Add embeds and writes records. The whole batch is embedded in one
	// call to the embedding service. Empty input is a no-op.
	Add(ctx context.Context, records []domain.Record) error

	// Upsert is Add with overwrite semantics for existing ids. Use it for
	// re-ingestion and for the summary-to-full-text upgrade workflow.
	Upsert(ctx context.Context, records []domain.Record) error

	// Query embeds the text and returns the topK nearest records by cosine
	// similarity, most similar first. topK <= 0 fails with
	// domain.ErrInvalidInput.
	Query(ctx context.Context, text string, topK int) ([]SearchHit, error)

	// Get returns the stored record with the given id, or
	// domain.ErrNotFound.
	Get(ctx context.Context, id string) (*SearchHit, error)

	// DeleteBySource removes every record whose metadata source equals the
	// given value. No-op if none match.
	DeleteBySource(ctx context.Context, source string) error

	// Stats returns the record count and collection name, for health and
	// idempotence checks before bulk writes.
	Stats(ctx context.Context) (StoreStats, error)

	// Close releases resources.
	Close() error
}

// SearchHit is a stored record returned from a similarity query.
type SearchHit struct {
	// ID is the record id.
	ID string

	// Text is the stored content.
	Text string

	// Metadata is the parsed provenance metadata.
	Metadata domain.Metadata

	// Distance is the cosine distance to the query (lower = more similar).
	// Zero for hits returned by Get.
	Distance float64
}

// StoreStats describes a collection for health checks.
type StoreStats struct {
	// Collection is the logical collection name.
	Collection string

	// Records is the total number of stored records.
	Records int
}
