// Package pdf extracts text from PDF files.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF files.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// DocType returns the provenance class for PDF files.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypePaper
}

// Extract parses the PDF and returns its plain text content.
// The underlying parser panics on some malformed files; that is recovered
// and reported as an extraction failure so directory ingestion can skip the
// file and continue.
func (e *Extractor) Extract(_ context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: parser panic: %v", domain.ErrExtractionFailed, path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}
	defer f.Close()

	r, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, path, err)
	}
	return buf.String(), nil
}
