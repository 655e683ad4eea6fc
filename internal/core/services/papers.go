package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// DefaultPapersDir is where downloaded paper PDFs are kept.
const DefaultPapersDir = "./corpus/papers"

// Ensure PaperService implements the interface.
var _ driving.PaperLibrarian = (*PaperService)(nil)

// PaperService manages the hybrid paper workflow: lightweight summaries
// discovered from the paper source, upgraded on demand to full PDF text.
type PaperService struct {
	source    driven.PaperSource
	store     driven.VectorStore
	ingestor  driving.Ingestor
	papersDir string
	trace     logger.Tracer
}

// NewPaperService creates a paper service. An empty papersDir falls back
// to DefaultPapersDir.
func NewPaperService(
	source driven.PaperSource,
	store driven.VectorStore,
	ingestor driving.Ingestor,
	papersDir string,
) *PaperService {
	if papersDir == "" {
		papersDir = DefaultPapersDir
	}
	return &PaperService{
		source:    source,
		store:     store,
		ingestor:  ingestor,
		papersDir: papersDir,
		trace:     logger.Pipeline("papers"),
	}
}

// Discover searches the configured topics and upserts one summary record
// per unique paper. Summaries of papers that were already upgraded keep
// their upgraded flag, so re-discovery never downgrades a paper.
func (s *PaperService) Discover(ctx context.Context) (*domain.FetchReport, error) {
	runID := uuid.NewString()
	s.trace.Begin("discovery run %s", runID)

	records, report, err := s.source.Discover(ctx)
	if report == nil {
		report = &domain.FetchReport{Source: s.source.Source()}
	}
	report.RunID = runID
	if err != nil {
		return report, fmt.Errorf("discover papers: %w", err)
	}

	for i := range records {
		stored, err := s.store.Get(ctx, records[i].ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return report, fmt.Errorf("check summary %s: %w", records[i].ID, err)
		}
		if stored.Metadata.Extra[domain.MetaKeyHasFullPDF] == "true" {
			records[i].Metadata.Extra[domain.MetaKeyHasFullPDF] = "true"
		}
	}

	if len(records) > 0 {
		if err := s.store.Upsert(ctx, records); err != nil {
			return report, fmt.Errorf("store paper summaries: %w", err)
		}
	}

	s.trace.Info("Discovered %d papers (%d fetched, %d below citation floor, %d duplicates)",
		len(records), report.Fetched, report.Filtered, report.Deduplicated)
	return report, nil
}

// Upgrade downloads the arXiv PDF for one paper, ingests its full text and
// flips the summary record's upgraded flag. A paper that was already
// upgraded is a no-op.
func (s *PaperService) Upgrade(ctx context.Context, arxivID string) (*driving.UpgradeOutcome, error) {
	outcome := &driving.UpgradeOutcome{ArxivID: arxivID}

	paper, err := s.source.LookupArxiv(ctx, arxivID)
	if err != nil {
		return nil, fmt.Errorf("lookup arXiv:%s: %w", arxivID, err)
	}
	outcome.Title = paper.Title

	summaryID := domain.PaperSummaryID(paper.PaperID)
	summary, err := s.store.Get(ctx, summaryID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load summary %s: %w", summaryID, err)
	}
	if summary != nil && summary.Metadata.Extra[domain.MetaKeyHasFullPDF] == "true" {
		s.trace.Info("arXiv:%s already upgraded, skipping", arxivID)
		return outcome, nil
	}

	s.trace.Begin("upgrade arXiv:%s", arxivID)
	pdfPath, err := s.source.DownloadPDF(ctx, arxivID, s.papersDir)
	if err != nil {
		outcome.Err = err
		return outcome, nil
	}
	s.trace.Debug("Saved %s", pdfPath)

	records, err := s.ingestor.IngestDocument(ctx, pdfPath)
	if err != nil {
		outcome.Err = err
		return outcome, nil
	}
	for i := range records {
		if records[i].Metadata.Extra == nil {
			records[i].Metadata.Extra = make(map[string]string)
		}
		records[i].Metadata.Extra[domain.MetaKeyArxivID] = arxivID
		records[i].Metadata.Extra[domain.MetaKeyHasFullPDF] = "true"
	}

	if err := s.store.Upsert(ctx, records); err != nil {
		return nil, fmt.Errorf("store full text arXiv:%s: %w", arxivID, err)
	}
	outcome.Chunks = len(records)

	if summary != nil {
		if err := s.markUpgraded(ctx, summary); err != nil {
			return nil, err
		}
	}

	s.trace.Info("Upgraded arXiv:%s: %d full-text records", arxivID, outcome.Chunks)
	return outcome, nil
}

// UpgradeTop upgrades up to n not-yet-upgraded papers with at least
// minCitations citations, most cited first. Individual upgrade failures
// are soft and reported per paper.
func (s *PaperService) UpgradeTop(ctx context.Context, n, minCitations int) ([]driving.UpgradeOutcome, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive", domain.ErrInvalidInput)
	}

	candidates, err := s.pendingPapers(ctx, minCitations)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.trace.Info("No papers eligible for upgrade")
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Citations > candidates[j].Citations
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	s.trace.Info("Upgrading %d papers by citation count", len(candidates))

	outcomes := make([]driving.UpgradeOutcome, 0, len(candidates))
	for _, paper := range candidates {
		s.trace.Debug("[%d citations] %s", paper.Citations, paper.Title)
		outcome, err := s.Upgrade(ctx, paper.ArxivID)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, *outcome)
	}
	return outcomes, nil
}

// pendingPapers re-runs topic discovery to enumerate candidate papers and
// keeps those whose stored summary has not been upgraded yet. The store
// has no scan-by-metadata operation, so the provider search doubles as the
// candidate enumeration and the store is only consulted by direct id.
func (s *PaperService) pendingPapers(ctx context.Context, minCitations int) ([]driven.PaperSummary, error) {
	records, _, err := s.source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate papers: %w", err)
	}

	var pending []driven.PaperSummary
	seen := make(map[string]struct{})

	for _, record := range records {
		arxivID := record.Metadata.Extra[domain.MetaKeyArxivID]
		if arxivID == "" {
			continue
		}
		if _, ok := seen[arxivID]; ok {
			continue
		}
		seen[arxivID] = struct{}{}

		citations, _ := strconv.Atoi(record.Metadata.Extra[domain.MetaKeyCitations])
		if citations < minCitations {
			continue
		}

		stored, err := s.store.Get(ctx, record.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check summary %s: %w", record.ID, err)
		}
		if stored != nil && stored.Metadata.Extra[domain.MetaKeyHasFullPDF] == "true" {
			continue
		}

		pending = append(pending, driven.PaperSummary{
			ArxivID:   arxivID,
			Title:     record.Metadata.Extra[domain.MetaKeyTitle],
			Citations: citations,
		})
	}
	return pending, nil
}

// markUpgraded rewrites a summary record with its upgraded flag set.
func (s *PaperService) markUpgraded(ctx context.Context, summary *driven.SearchHit) error {
	meta := summary.Metadata
	if meta.Extra == nil {
		meta.Extra = make(map[string]string)
	}
	meta.Extra[domain.MetaKeyHasFullPDF] = "true"

	record := domain.Record{ID: summary.ID, Text: summary.Text, Metadata: meta}
	if err := s.store.Upsert(ctx, []domain.Record{record}); err != nil {
		return fmt.Errorf("mark summary %s upgraded: %w", summary.ID, err)
	}
	return nil
}
