// Package config loads the ragdex configuration from a TOML file, applying
// defaults for anything the file leaves out. Secrets are never written to
// the file; the Anthropic API key is read from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file looked up under the config directory.
const DefaultFileName = "config.toml"

// EnvAnthropicAPIKey is the environment variable holding the Anthropic key.
const EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"

// Config is the full ragdex configuration.
type Config struct {
	Corpus        CorpusConfig        `toml:"corpus"`
	Chunking      ChunkingConfig      `toml:"chunking"`
	Store         StoreConfig         `toml:"store"`
	Embedding     EmbeddingConfig     `toml:"embedding"`
	LLM           LLMConfig           `toml:"llm"`
	Retrieval     RetrievalConfig     `toml:"retrieval"`
	Reddit        RedditConfig        `toml:"reddit"`
	StackOverflow StackOverflowConfig `toml:"stackoverflow"`
	Papers        PapersConfig        `toml:"papers"`
}

// CorpusConfig locates the document corpus on disk.
type CorpusConfig struct {
	// Root is the directory walked by directory ingestion.
	Root string `toml:"root"`

	// PapersDir is where downloaded paper PDFs are kept.
	PapersDir string `toml:"papers_dir"`
}

// ChunkingConfig controls document chunking.
type ChunkingConfig struct {
	// TargetSize is the chunk size target in words.
	TargetSize int `toml:"target_size"`

	// OverlapRatio is the fraction of the target size carried over
	// between consecutive chunks.
	OverlapRatio float64 `toml:"overlap_ratio"`
}

// StoreConfig controls the persistent vector store.
type StoreConfig struct {
	// Path is the on-disk database directory.
	Path string `toml:"path"`

	// Collection is the logical collection name.
	Collection string `toml:"collection"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`
}

// LLMConfig configures answer generation.
type LLMConfig struct {
	// Model is the Anthropic model used for generation.
	Model string `toml:"model"`

	// MaxTokens caps the generated answer length.
	MaxTokens int `toml:"max_tokens"`

	// APIKey is resolved from the environment, never from the file.
	APIKey string `toml:"-"`
}

// RetrievalConfig controls similarity retrieval.
type RetrievalConfig struct {
	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k"`
}

// RedditConfig controls the Reddit harvest source.
type RedditConfig struct {
	Subreddits    []string `toml:"subreddits"`
	Queries       []string `toml:"queries"`
	PostsPerQuery int      `toml:"posts_per_query"`
	MinScore      int      `toml:"min_score"`
}

// StackOverflowConfig controls the StackOverflow harvest source.
type StackOverflowConfig struct {
	Queries  []string `toml:"queries"`
	PageSize int      `toml:"page_size"`
	MinScore int      `toml:"min_score"`
	Tagged   string   `toml:"tagged"`
}

// PapersConfig controls paper discovery and upgrades.
type PapersConfig struct {
	Topics         []string `toml:"topics"`
	PapersPerTopic int      `toml:"papers_per_topic"`
	MinCitations   int      `toml:"min_citations"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Root:      "./corpus",
			PapersDir: "./corpus/papers",
		},
		Chunking: ChunkingConfig{
			TargetSize:   512,
			OverlapRatio: 0.1,
		},
		Store: StoreConfig{
			Path:       "./data/ragdex",
			Collection: "ragdex_docs",
		},
		Embedding: EmbeddingConfig{
			Provider: "ollama",
		},
		LLM: LLMConfig{
			Model:     "claude-3-5-sonnet-latest",
			MaxTokens: 1024,
		},
		Retrieval: RetrievalConfig{
			TopK: 5,
		},
	}
}

// Load reads the configuration from path. An empty path tries the default
// location and a missing file yields the defaults. Values absent from the
// file keep their defaults; the API key always comes from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine, run on defaults.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.LLM.APIKey = os.Getenv(EnvAnthropicAPIKey)
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns ~/.ragdex/config.toml, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, ".ragdex", DefaultFileName)
}
