package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAnthropicAPIKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "./corpus", cfg.Corpus.Root)
	assert.Equal(t, 512, cfg.Chunking.TargetSize)
	assert.InDelta(t, 0.1, cfg.Chunking.OverlapRatio, 1e-9)
	assert.Equal(t, "ragdex_docs", cfg.Store.Collection)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAnthropicAPIKey, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[chunking]
target_size = 256

[store]
collection = "my_docs"

[reddit]
subreddits = ["golang"]
min_score = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Chunking.TargetSize)
	assert.Equal(t, "my_docs", cfg.Store.Collection)
	assert.Equal(t, []string{"golang"}, cfg.Reddit.Subreddits)
	assert.Equal(t, 10, cfg.Reddit.MinScore)

	// Untouched sections keep their defaults.
	assert.InDelta(t, 0.1, cfg.Chunking.OverlapRatio, 1e-9)
	assert.Equal(t, "./data/ragdex", cfg.Store.Path)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv(EnvAnthropicAPIKey, "sk-test-123")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", cfg.LLM.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store\nbroken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv(EnvAnthropicAPIKey, "")

	path := filepath.Join(t.TempDir(), "deep", "config.toml")

	cfg := Default()
	cfg.Store.Collection = "custom"
	cfg.Papers.Topics = []string{"rag evaluation"}
	cfg.LLM.APIKey = "never-persisted"

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", loaded.Store.Collection)
	assert.Equal(t, []string{"rag evaluation"}, loaded.Papers.Topics)

	// The key comes from the environment, never the file.
	assert.Empty(t, loaded.LLM.APIKey)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "never-persisted")
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, ".ragdex")
	assert.Equal(t, DefaultFileName, filepath.Base(path))
}
