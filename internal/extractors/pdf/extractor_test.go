package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

func TestMetadata(t *testing.T) {
	e := New()
	assert.Equal(t, []string{".pdf"}, e.Extensions())
	assert.Equal(t, domain.DocTypePaper, e.DocType())
}

func TestExtract_MissingFile(t *testing.T) {
	e := New()
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_NotAPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just some text, no pdf header"), 0o644))

	e := New()
	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_TruncatedPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.pdf")

	// A valid header with a garbage body; the parser either errors or
	// panics here, and both must surface as an extraction failure.
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj\n<< /Broken"), 0o644))

	e := New()
	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
