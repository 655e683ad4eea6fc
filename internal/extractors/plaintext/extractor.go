// Package plaintext extracts text from plain text files.
package plaintext

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

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// DocType returns the provenance class for plain text files.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeGuide
}

// Extract reads the file content as-is, normalising line endings.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
