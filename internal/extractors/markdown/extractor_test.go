package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

func TestExtract_KeepsMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	content := "# Heading\r\n\r\nSome *emphasis* here.\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	e := New()
	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Heading\n\nSome *emphasis* here.\n", text)
}

func TestMetadata(t *testing.T) {
	e := New()
	assert.ElementsMatch(t, []string{".md", ".markdown"}, e.Extensions())
	assert.Equal(t, domain.DocTypeFramework, e.DocType())
}
