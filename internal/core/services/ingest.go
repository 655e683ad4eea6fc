package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ragdex-labs/ragdex-cli/internal/chunker"
	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService turns documents on disk into uniform, identified records.
type IngestService struct {
	registry driven.ExtractorRegistry
	chunker  *chunker.Chunker
	trace    logger.Tracer
}

// NewIngestService creates an ingest service. A nil chunker gets the
// default chunking parameters.
func NewIngestService(registry driven.ExtractorRegistry, ch *chunker.Chunker) *IngestService {
	if ch == nil {
		ch = chunker.New()
	}
	return &IngestService{
		registry: registry,
		chunker:  ch,
		trace:    logger.Pipeline("ingest"),
	}
}

// IngestDocument extracts, chunks and identifies a single document.
func (s *IngestService) IngestDocument(ctx context.Context, path string) ([]domain.Record, error) {
	extractor, err := s.registry.ForPath(path)
	if err != nil {
		return nil, err
	}

	s.trace.Debug("Extracting %s", path)
	text, err := extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	chunks := s.chunker.Chunk(text)
	sourceName := filepath.Base(path)

	records := make([]domain.Record, 0, len(chunks))
	for i, chunk := range chunks {
		id := chunker.MakeID(sourceName, i, chunk)
		records = append(records, domain.Record{
			ID:   id,
			Text: chunk,
			Metadata: domain.Metadata{
				Source:     sourceName,
				DocType:    extractor.DocType(),
				ChunkIndex: i,
				Extra: map[string]string{
					domain.MetaKeyChunkID: id,
				},
			},
		})
	}

	s.trace.Debug("%s: %d chunks", sourceName, len(records))
	return records, nil
}

// IngestDirectory walks root recursively and ingests every supported file.
// When extensions is non-empty, only those extensions are considered.
// One file's failure is recorded in the result and never aborts the rest.
func (s *IngestService) IngestDirectory(ctx context.Context, root string, extensions []string) (*domain.IngestResult, error) {
	allowed := make(map[string]struct{})
	if len(extensions) == 0 {
		extensions = s.registry.Extensions()
	}
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	result := &domain.IngestResult{}

	s.trace.Begin("walk %s (extensions %v)", root, extensions)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := allowed[ext]; !ok {
			return nil
		}

		records, ingestErr := s.IngestDocument(ctx, path)
		outcome := domain.FileOutcome{Path: path, Err: ingestErr}
		if ingestErr == nil {
			outcome.Chunks = len(records)
			if len(records) > 0 {
				outcome.DocType = records[0].Metadata.DocType
			}
			result.Records = append(result.Records, records...)
		} else {
			s.trace.Warn("Skipping %s: %v", path, ingestErr)
		}
		result.Files = append(result.Files, outcome)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	s.trace.Info("Ingested %d/%d files (%d records)",
		result.Succeeded(), len(result.Files), len(result.Records))
	return result, nil
}
