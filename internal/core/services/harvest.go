package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
	"github.com/ragdex-labs/ragdex-cli/internal/logger"
)

// Ensure HarvestService implements the interface.
var _ driving.Harvester = (*HarvestService)(nil)

// HarvestService fetches community content from configured sources and
// upserts it into the vector store.
type HarvestService struct {
	sources []driven.ContentSource
	store   driven.VectorStore
	trace   logger.Tracer
}

// NewHarvestService creates a harvest service over the given sources.
func NewHarvestService(store driven.VectorStore, sources ...driven.ContentSource) *HarvestService {
	return &HarvestService{
		sources: sources,
		store:   store,
		trace:   logger.Pipeline("harvest"),
	}
}

// Harvest runs every source in turn. Each run gets its own report and run
// id; per-query failures inside a source are soft, but a store write
// failure is fatal since it means nothing further can be persisted.
func (s *HarvestService) Harvest(ctx context.Context) ([]domain.FetchReport, error) {
	reports := make([]domain.FetchReport, 0, len(s.sources))

	for _, source := range s.sources {
		runID := uuid.NewString()
		s.trace.Begin("%s run %s", source.Source(), runID)

		records, report, err := source.FetchAll(ctx)
		if report == nil {
			report = &domain.FetchReport{Source: source.Source()}
		}
		report.RunID = runID
		if err != nil {
			reports = append(reports, *report)
			return reports, fmt.Errorf("fetch %s: %w", source.Source(), err)
		}

		// Upsert so a re-harvest overwrites rather than duplicates.
		if len(records) > 0 {
			if err := s.store.Upsert(ctx, records); err != nil {
				reports = append(reports, *report)
				return reports, fmt.Errorf("store %s records: %w", source.Source(), err)
			}
		}

		s.trace.Info("%s: %d records stored (%d fetched, %d filtered, %d duplicates, %d failed queries)",
			source.Source(), len(records), report.Fetched,
			report.Filtered, report.Deduplicated, report.Failures())
		reports = append(reports, *report)
	}
	return reports, nil
}
