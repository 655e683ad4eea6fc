// Package chromem provides a VectorStore adapter backed by chromem-go
// persistent collections.
package chromem

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultPath       = "./data/ragdex"
	DefaultCollection = "ragdex_docs"
)

// Config holds configuration for the chromem store.
type Config struct {
	// Path is the directory the collection is persisted under
	// (default: ./data/ragdex).
	Path string

	// Collection is the logical collection name (default: ragdex_docs).
	Collection string
}

// Store persists records in a named on-disk chromem collection and answers
// cosine-similarity queries over them. One collection holds vectors of one
// fixed dimensionality; switching embedding models requires a fresh
// collection.
//
// The backend keys documents by id, so Add is last-writer-wins rather than
// strictly insert-only. Callers still must use Upsert when an id may already
// exist; Add's duplicate behaviour is backend-defined, not part of the
// contract.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	embedder   driven.EmbeddingService
	trace      logger.Tracer
}

// New opens (or creates) the persistent collection at cfg.Path.
func New(cfg Config, embedder driven.EmbeddingService) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedding service is required", domain.ErrInvalidInput)
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}

	collection, err := db.GetOrCreateCollection(
		cfg.Collection,
		map[string]string{"hnsw:space": "cosine"},
		embedder.Embed,
	)
	if err != nil {
		return nil, fmt.Errorf("open collection %q: %w", cfg.Collection, err)
	}

	return &Store{
		db:         db,
		collection: collection,
		name:       cfg.Collection,
		embedder:   embedder,
		trace:      logger.Pipeline("store"),
	}, nil
}

// Add embeds and writes records with plain insert semantics.
func (s *Store) Add(ctx context.Context, records []domain.Record) error {
	return s.write(ctx, records)
}

// Upsert embeds and writes records, overwriting any existing ids.
func (s *Store) Upsert(ctx context.Context, records []domain.Record) error {
	return s.write(ctx, records)
}

// write validates the batch, embeds it in a single call and stores the
// (id, text, embedding, metadata) tuples.
func (s *Store) write(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		texts[i] = r.Text
	}

	s.trace.Debug("Embedding batch of %d records with %s", len(records), s.embedder.ModelName())
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}
	if len(embeddings) != len(records) {
		return fmt.Errorf("%w: got %d embeddings for %d records",
			domain.ErrEmbeddingFailed, len(embeddings), len(records))
	}

	ids := make([]string, len(records))
	metadatas := make([]map[string]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
		metadatas[i] = r.Metadata.Strings()
	}

	if err := s.collection.Add(ctx, ids, embeddings, metadatas, texts); err != nil {
		return fmt.Errorf("store records: %w", err)
	}
	s.trace.Debug("Stored %d records in collection %q", len(records), s.name)
	return nil
}

// Query embeds the text and returns the topK nearest records.
func (s *Store) Query(ctx context.Context, text string, topK int) ([]driven.SearchHit, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidInput, topK)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty query text", domain.ErrInvalidInput)
	}

	count := s.collection.Count()
	if count == 0 {
		return []driven.SearchHit{}, nil
	}
	if topK > count {
		topK = count
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}

	results, err := s.collection.QueryEmbedding(ctx, embedding, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	hits := make([]driven.SearchHit, len(results))
	for i, res := range results {
		hits[i] = driven.SearchHit{
			ID:       res.ID,
			Text:     res.Content,
			Metadata: domain.MetadataFromStrings(res.Metadata),
			Distance: 1 - float64(res.Similarity),
		}
	}
	return hits, nil
}

// Get returns the stored record with the given id.
func (s *Store) Get(ctx context.Context, id string) (*driven.SearchHit, error) {
	doc, err := s.collection.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: record %q", domain.ErrNotFound, id)
	}
	return &driven.SearchHit{
		ID:       doc.ID,
		Text:     doc.Content,
		Metadata: domain.MetadataFromStrings(doc.Metadata),
	}, nil
}

// DeleteBySource removes every record whose source matches.
func (s *Store) DeleteBySource(ctx context.Context, source string) error {
	if source == "" {
		return fmt.Errorf("%w: empty source", domain.ErrInvalidInput)
	}
	if s.collection.Count() == 0 {
		return nil
	}
	where := map[string]string{domain.MetaKeySource: source}
	if err := s.collection.Delete(ctx, where, nil); err != nil {
		return fmt.Errorf("delete by source %q: %w", source, err)
	}
	return nil
}

// Stats returns the collection name and stored record count.
func (s *Store) Stats(_ context.Context) (driven.StoreStats, error) {
	return driven.StoreStats{
		Collection: s.name,
		Records:    s.collection.Count(),
	}, nil
}

// Close releases resources. The chromem backend persists on every write, so
// there is nothing to flush; the embedding service is owned by the caller.
func (s *Store) Close() error {
	return nil
}
