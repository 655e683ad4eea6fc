package driving

import (
	"context"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

// Ingestor turns documents on disk into uniform records.
type Ingestor interface {
	// IngestDocument extracts, chunks and identifies a single document.
	// The records are ordered by chunk index. An unsupported extension
	// fails with domain.ErrUnsupportedFormat.
	IngestDocument(ctx context.Context, path string) ([]domain.Record, error)

	// IngestDirectory walks root recursively and ingests every file whose
	// extension is in extensions (nil means all supported extensions).
	// One file's failure is recorded in the result and never aborts the
	// remaining files. Traversal order is not guaranteed to be stable
	// across filesystems; callers must not depend on record ordering for
	// correctness.
	IngestDirectory(ctx context.Context, root string, extensions []string) (*domain.IngestResult, error)
}
