package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	upgradeTopN         int
	upgradeMinCitations int
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Discover and upgrade academic papers",
	Long: `Manage the hybrid paper workflow.

"papers discover" searches Semantic Scholar for the configured topics and
stores one lightweight summary per paper. "papers upgrade" downloads a
paper's full PDF from arXiv, ingests it and marks the summary as upgraded.`,
}

var papersDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover papers and store their summaries",
	RunE:  runPapersDiscover,
}

var papersUpgradeCmd = &cobra.Command{
	Use:   "upgrade [arxiv-id]",
	Short: "Upgrade papers to full PDF content",
	Long: `Upgrade a paper from summary-only to full PDF content.

With an arXiv id, upgrades that paper. Without one, upgrades the most-cited
not-yet-upgraded papers (see --top and --min-citations).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPapersUpgrade,
}

func init() {
	papersUpgradeCmd.Flags().IntVarP(&upgradeTopN, "top", "n", 5, "papers to upgrade when no arXiv id is given")
	papersUpgradeCmd.Flags().IntVar(&upgradeMinCitations, "min-citations", 100, "citation floor for bulk upgrades")
	papersCmd.AddCommand(papersDiscoverCmd)
	papersCmd.AddCommand(papersUpgradeCmd)
	rootCmd.AddCommand(papersCmd)
}

func runPapersDiscover(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	report, err := paperService.Discover(cmd.Context())
	if err != nil {
		return fmt.Errorf("discover failed: %w", err)
	}

	stored := 0
	for _, q := range report.Queries {
		stored += q.Items
	}
	cmd.Printf("Discovered %d papers (%d fetched, %d below citation floor, %d duplicates)\n",
		stored, report.Fetched, report.Filtered, report.Deduplicated)
	if n := report.Failures(); n > 0 {
		cmd.Printf("  %d topics failed:\n", n)
		for _, q := range report.Queries {
			if q.Err != nil {
				cmd.Printf("    %s: %v\n", q.Query, q.Err)
			}
		}
	}
	return nil
}

func runPapersUpgrade(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	ctx := cmd.Context()

	if len(args) == 1 {
		outcome, err := paperService.Upgrade(ctx, args[0])
		if err != nil {
			return fmt.Errorf("upgrade failed: %w", err)
		}
		printUpgradeOutcome(cmd, outcome.ArxivID, outcome.Title, outcome.Chunks, outcome.Err)
		return nil
	}

	outcomes, err := paperService.UpgradeTop(ctx, upgradeTopN, upgradeMinCitations)
	if err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}
	if len(outcomes) == 0 {
		cmd.Println("No papers eligible for upgrade.")
		return nil
	}
	for _, o := range outcomes {
		printUpgradeOutcome(cmd, o.ArxivID, o.Title, o.Chunks, o.Err)
	}
	return nil
}

func printUpgradeOutcome(cmd *cobra.Command, arxivID, title string, chunks int, err error) {
	switch {
	case err != nil:
		cmd.Printf("  arXiv:%s %s: failed: %v\n", arxivID, title, err)
	case chunks == 0:
		cmd.Printf("  arXiv:%s %s: already upgraded\n", arxivID, title)
	default:
		cmd.Printf("  arXiv:%s %s: %d full-text chunks\n", arxivID, title, chunks)
	}
}
