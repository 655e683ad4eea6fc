// Package markdown extracts text from Markdown files.
package markdown

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown files. The markup is kept: headings and list
// markers carry structure the chunker's paragraph splitting benefits from,
// and they embed fine.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".md", ".markdown"}
}

// DocType returns the provenance class for Markdown files.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeFramework
}

// Extract reads the file content, normalising line endings.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
