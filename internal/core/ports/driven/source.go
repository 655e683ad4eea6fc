package driven

import (
	"context"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
)

// ContentSource fetches community content from one upstream provider and
// maps it to records. Implementations own their rate limiting, score
// filtering and per-run dedup.
type ContentSource interface {
	// Source returns the provider name used in fetch reports.
	Source() string

	// FetchAll runs every configured query and returns the surviving
	// records plus the run's report. Per-query failures are soft: they are
	// recorded in the report and the remaining queries still run.
	FetchAll(ctx context.Context) ([]domain.Record, *domain.FetchReport, error)
}

// PaperSummary describes one discovered paper for upgrade bookkeeping.
type PaperSummary struct {
	// PaperID is the provider's canonical paper id.
	PaperID string

	// ArxivID is the paper's arXiv id, empty when the paper is not on
	// arXiv (such papers cannot be upgraded).
	ArxivID string

	// Title is the paper title.
	Title string

	// Citations is the citation count at discovery time.
	Citations int
}

// PaperSource discovers academic papers and retrieves their full PDFs.
type PaperSource interface {
	// Source returns the provider name used in fetch reports.
	Source() string

	// Discover searches the configured topics and returns one summary
	// record per unique paper plus the run's report.
	Discover(ctx context.Context) ([]domain.Record, *domain.FetchReport, error)

	// LookupArxiv resolves an arXiv id to its paper summary, or
	// domain.ErrNotFound.
	LookupArxiv(ctx context.Context, arxivID string) (*PaperSummary, error)

	// DownloadPDF fetches the paper's PDF into dir and returns the saved
	// path.
	DownloadPDF(ctx context.Context, arxivID, dir string) (string, error)
}
