package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

var (
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Retrieve the most similar chunks for a query",
	Long: `Retrieve stored chunks by semantic similarity, without generation.
Useful for inspecting what context the knowledge base would supply.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	topK := queryTopK
	if topK <= 0 {
		topK = cfg.Retrieval.TopK
	}

	hits, err := retrieveSvc.Retrieve(cmd.Context(), args[0], topK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputHitsJSON(cmd, hits)
	}
	outputHits(cmd, hits)
	return nil
}

func outputHitsJSON(cmd *cobra.Command, hits []driven.SearchHit) error {
	type hitOut struct {
		ID       string            `json:"id"`
		Source   string            `json:"source"`
		DocType  string            `json:"doc_type"`
		Distance float64           `json:"distance"`
		Text     string            `json:"text"`
		Metadata map[string]string `json:"metadata,omitempty"`
	}

	out := make([]hitOut, len(hits))
	for i, h := range hits {
		out[i] = hitOut{
			ID:       h.ID,
			Source:   h.Metadata.Source,
			DocType:  string(h.Metadata.DocType),
			Distance: h.Distance,
			Text:     h.Text,
			Metadata: h.Metadata.Extra,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHits(cmd *cobra.Command, hits []driven.SearchHit) {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, h := range hits {
		cmd.Printf("  [%d] %s (distance %.4f)\n", i+1, h.Metadata.Source, h.Distance)
		cmd.Printf("      %s\n", snippet(h.Text, 200))
		cmd.Println()
	}
}

// snippet collapses text to a single line of at most n runes.
func snippet(text string, n int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= n {
		return collapsed
	}
	return string(runes[:n]) + "..."
}
