package driven

import (
	"context"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

// Extractor converts one file format into plain text. Each extractor handles
// specific file extensions and declares the provenance class of the documents
// it produces.
type Extractor interface {
	// Extensions returns the lower-case file extensions this extractor
	// handles, including the leading dot (".pdf", ".md").
	Extensions() []string

	// DocType returns the provenance class assigned to extracted documents.
	DocType() domain.DocType

	// Extract reads the file and returns its plain text content.
	// Parser failures are reported wrapped in domain.ErrExtractionFailed.
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorRegistry dispatches files to extractors by extension.
type ExtractorRegistry interface {
	// ForPath returns the extractor for the file's extension, or
	// domain.ErrUnsupportedFormat if none is registered.
	ForPath(path string) (Extractor, error)

	// Extensions returns all registered extensions.
	Extensions() []string
}
