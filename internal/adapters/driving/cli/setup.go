package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ragdex-labs/ragdex-cli/internal/config"
)

var (
	setupForce         bool
	setupSkipCorpus    bool
	setupSkipCommunity bool
	setupSkipPapers    bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initialize the knowledge base end to end",
	Long: `Write the default config file, create the corpus and data
directories, then populate the knowledge base: ingest the corpus
directory, discover papers on Semantic Scholar and harvest community
content. Each population step can be skipped individually.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupForce, "force", false, "overwrite an existing config file")
	setupCmd.Flags().BoolVar(&setupSkipCorpus, "skip-corpus", false, "skip ingesting the corpus directory")
	setupCmd.Flags().BoolVar(&setupSkipCommunity, "skip-community", false, "skip harvesting Reddit and StackOverflow")
	setupCmd.Flags().BoolVar(&setupSkipPapers, "skip-papers", false, "skip Semantic Scholar paper discovery")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !setupForce {
		cmd.Printf("Config already exists at %s (use --force to overwrite)\n", path)
	} else {
		if err := config.Save(config.Default(), path); err != nil {
			return err
		}
		cmd.Printf("Wrote config to %s\n", path)
	}

	for _, dir := range []string{cfg.Corpus.Root, cfg.Corpus.PapersDir, cfg.Store.Path} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		cmd.Printf("Created %s\n", dir)
	}

	emb, err := newEmbedder()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := emb.Ping(pingCtx); err != nil {
		cmd.Printf("Warning: embedding provider not reachable: %v\n", err)
		cmd.Println("Start it (e.g. `ollama serve` and `ollama pull nomic-embed-text`), then re-run setup or the individual commands.")
		return nil
	}
	cmd.Printf("Embedding provider OK: %s\n", emb.ModelName())

	if err := ensureServices(); err != nil {
		return err
	}
	ctx := cmd.Context()

	if !setupSkipCorpus {
		cmd.Printf("Ingesting corpus from %s\n", cfg.Corpus.Root)
		result, err := ingestService.IngestDirectory(ctx, cfg.Corpus.Root, nil)
		if err != nil {
			return err
		}
		if len(result.Records) > 0 {
			if err := vectorStore.Upsert(ctx, result.Records); err != nil {
				return err
			}
		}
		cmd.Printf("  %d/%d files (%d chunks)\n",
			result.Succeeded(), len(result.Files), len(result.Records))
	}

	if !setupSkipPapers {
		cmd.Println("Discovering papers on Semantic Scholar")
		report, err := paperService.Discover(ctx)
		if err != nil {
			return fmt.Errorf("paper discovery: %w", err)
		}
		stored := 0
		for _, q := range report.Queries {
			stored += q.Items
		}
		cmd.Printf("  %d summaries stored (%d fetched)\n", stored, report.Fetched)
	}

	if !setupSkipCommunity {
		cmd.Println("Harvesting community content")
		reports, err := harvestService.Harvest(ctx)
		if err != nil {
			return fmt.Errorf("community harvest: %w", err)
		}
		for _, report := range reports {
			stored := 0
			for _, q := range report.Queries {
				stored += q.Items
			}
			cmd.Printf("  %s: %d stored\n", report.Source, stored)
		}
	}

	if cfg.LLM.APIKey == "" {
		cmd.Println("Note: ANTHROPIC_API_KEY is not set; `ask` and `chat` will be unavailable.")
	}
	cmd.Println("Setup complete.")
	return nil
}
