package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Harvest community content into the knowledge base",
	Long: `Fetch discussion content from the configured community sources
(Reddit and StackOverflow), convert it to records and store it.

Each post or question becomes a single record keyed by its upstream id, so
re-running a fetch refreshes existing content instead of duplicating it.
Individual failed queries are reported and skipped.`,
	RunE: runFetch,
}

var fetchMinScore int

func init() {
	fetchCmd.Flags().IntVar(&fetchMinScore, "min-score", 0, "override the configured score floor for all sources (0 disables it)")
	rootCmd.AddCommand(fetchCmd)
}

// effectiveMinScore maps an explicit --min-score value to the source
// adapters' floor semantics, where zero means "apply the default". An
// explicit 0 (or below) disables the floor instead of restoring it.
func effectiveMinScore(v int) int {
	if v <= 0 {
		return math.MinInt
	}
	return v
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("min-score") {
		score := effectiveMinScore(fetchMinScore)
		cfg.Reddit.MinScore = score
		cfg.StackOverflow.MinScore = score
	}
	if err := ensureServices(); err != nil {
		return err
	}

	reports, err := harvestService.Harvest(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	for _, report := range reports {
		stored := 0
		for _, q := range report.Queries {
			stored += q.Items
		}
		cmd.Printf("%s: %d stored (%d fetched, %d below score floor, %d duplicates)\n",
			report.Source, stored, report.Fetched, report.Filtered, report.Deduplicated)
		if n := report.Failures(); n > 0 {
			cmd.Printf("  %d queries failed:\n", n)
			for _, q := range report.Queries {
				if q.Err != nil {
					cmd.Printf("    %s: %v\n", q.Query, q.Err)
				}
			}
		}
	}
	return nil
}
