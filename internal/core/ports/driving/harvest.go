package driving

import (
	"context"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

// Harvester fetches community content (Reddit, StackOverflow) and upserts it
// into the store, one report per upstream source.
type Harvester interface {
	// Harvest runs all configured community sources. A failure in one
	// source or query is recorded in its report, not propagated as fatal.
	Harvest(ctx context.Context) ([]domain.FetchReport, error)
}

// UpgradeOutcome describes one paper's summary-to-full-text upgrade.
type UpgradeOutcome struct {
	// ArxivID is the upgraded paper.
	ArxivID string

	// Title is the paper title when known.
	Title string

	// Chunks is the number of full-text records written.
	Chunks int

	// Err is nil on success; a failed upgrade is a soft failure.
	Err error
}

// PaperLibrarian manages paper summaries and their upgrade to full PDFs.
type PaperLibrarian interface {
	// Discover searches configured topics on Semantic Scholar and upserts
	// one summary record per unique paper.
	Discover(ctx context.Context) (*domain.FetchReport, error)

	// Upgrade downloads the arXiv PDF for one paper, ingests it and marks
	// the summary record as upgraded. Re-running is idempotent.
	Upgrade(ctx context.Context, arxivID string) (*UpgradeOutcome, error)

	// UpgradeTop upgrades up to n not-yet-upgraded papers with at least
	// minCitations citations, most cited first.
	UpgradeTop(ctx context.Context, n, minCitations int) ([]UpgradeOutcome, error)
}
