// Package cli implements the ragdex command-line interface. Commands share
// a lazily initialized service container so lightweight commands (version,
// setup) never touch the store or the embedding provider.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/embedding/ollama"
	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/embedding/openai"
	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/fetch/reddit"
	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/fetch/semanticscholar"
	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/fetch/stackoverflow"
	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/llm/anthropic"
	"github.com/ragdex-labs/ragdex-cli/internal/adapters/driven/store/chromem"
	"github.com/ragdex-labs/ragdex-cli/internal/chunker"
	"github.com/ragdex-labs/ragdex-cli/internal/config"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
	"github.com/ragdex-labs/ragdex-cli/internal/core/services"
	"github.com/ragdex-labs/ragdex-cli/internal/extractors"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

var (
	version = "dev"

	cfgFile string
	verbose bool

	cfg *config.Config

	// Services are wired on first use by ensureServices.
	vectorStore    driven.VectorStore
	embedder       driven.EmbeddingService
	ingestService  driving.Ingestor
	retrieveSvc    *services.RetrieveService
	harvestService driving.Harvester
	paperService   driving.PaperLibrarian
)

var rootCmd = &cobra.Command{
	Use:   "ragdex",
	Short: "Build and query a local RAG knowledge base",
	Long: `Ragdex builds a local retrieval-augmented generation knowledge base.

It ingests documents (PDF, Markdown, HTML, plain text), harvests community
content from Reddit and StackOverflow, discovers academic papers via
Semantic Scholar, and answers questions grounded in the stored corpus.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.ragdex/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command. The version string is injected from main.
func Execute(v string) {
	if v != "" {
		version = v
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newEmbedder builds the configured embedding provider.
func newEmbedder() (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// ensureServices wires the store-backed services on first use.
func ensureServices() error {
	if vectorStore != nil {
		return nil
	}

	emb, err := newEmbedder()
	if err != nil {
		return err
	}
	embedder = emb

	store, err := chromem.New(chromem.Config{
		Path:       cfg.Store.Path,
		Collection: cfg.Store.Collection,
	}, embedder)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	vectorStore = store

	ch := chunker.New(
		chunker.WithTargetSize(cfg.Chunking.TargetSize),
		chunker.WithOverlapRatio(cfg.Chunking.OverlapRatio),
	)
	ingestService = services.NewIngestService(extractors.Defaults(), ch)
	retrieveSvc = services.NewRetrieveService(vectorStore)

	harvestService = services.NewHarvestService(vectorStore,
		reddit.New(reddit.Config{
			Subreddits:    cfg.Reddit.Subreddits,
			Queries:       cfg.Reddit.Queries,
			PostsPerQuery: cfg.Reddit.PostsPerQuery,
			MinScore:      cfg.Reddit.MinScore,
		}),
		stackoverflow.New(stackoverflow.Config{
			Queries:  cfg.StackOverflow.Queries,
			PageSize: cfg.StackOverflow.PageSize,
			MinScore: cfg.StackOverflow.MinScore,
			Tagged:   cfg.StackOverflow.Tagged,
		}),
	)

	paperService = services.NewPaperService(
		semanticscholar.New(semanticscholar.Config{
			Topics:         cfg.Papers.Topics,
			PapersPerTopic: cfg.Papers.PapersPerTopic,
			MinCitations:   cfg.Papers.MinCitations,
		}),
		vectorStore,
		ingestService,
		cfg.Corpus.PapersDir,
	)

	return nil
}

// newAsker builds the question-answering pipeline. Generation needs an
// Anthropic key, so this is separate from ensureServices: retrieval-only
// commands keep working without one.
func newAsker() (driving.Asker, error) {
	if err := ensureServices(); err != nil {
		return nil, err
	}
	if cfg.LLM.APIKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY is not set; answer generation requires it")
	}

	llm, err := anthropic.NewLLMService(anthropic.Config{
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return services.NewAskService(retrieveSvc, llm), nil
}
