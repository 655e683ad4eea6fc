package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	stats, err := vectorStore.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	cmd.Printf("Collection: %s\n", stats.Collection)
	cmd.Printf("Records:    %d\n", stats.Records)
	cmd.Printf("Store path: %s\n", cfg.Store.Path)
	cmd.Printf("Embedding:  %s (%s)\n", embedder.ModelName(), cfg.Embedding.Provider)
	return nil
}
