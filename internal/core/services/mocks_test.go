package services

import (
	"context"
	"fmt"

	"github.com/ragdex-labs/ragdex-cli/internal/core/domain"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
)

// memStore is an in-memory VectorStore for service tests. Query answers
// from canned hits since similarity is the real store's concern, not the
// services'.
type memStore struct {
	records  map[string]domain.Record
	upserts  int
	writeErr error
	hits     []driven.SearchHit
	queryErr error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]domain.Record)}
}

func (m *memStore) Add(ctx context.Context, records []domain.Record) error {
	return m.Upsert(ctx, records)
}

func (m *memStore) Upsert(_ context.Context, records []domain.Record) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.upserts++
	for _, r := range records {
		m.records[r.ID] = r
	}
	return nil
}

func (m *memStore) Query(_ context.Context, _ string, _ int) ([]driven.SearchHit, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.hits, nil
}

func (m *memStore) Get(_ context.Context, id string) (*driven.SearchHit, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: record %q", domain.ErrNotFound, id)
	}
	return &driven.SearchHit{ID: r.ID, Text: r.Text, Metadata: r.Metadata}, nil
}

func (m *memStore) DeleteBySource(_ context.Context, source string) error {
	for id, r := range m.records {
		if r.Metadata.Source == source {
			delete(m.records, id)
		}
	}
	return nil
}

func (m *memStore) Stats(_ context.Context) (driven.StoreStats, error) {
	return driven.StoreStats{Collection: "mem", Records: len(m.records)}, nil
}

func (m *memStore) Close() error { return nil }

// fakeSource is a canned ContentSource.
type fakeSource struct {
	name    string
	records []domain.Record
	report  *domain.FetchReport
	err     error
}

func (f *fakeSource) Source() string { return f.name }

func (f *fakeSource) FetchAll(_ context.Context) ([]domain.Record, *domain.FetchReport, error) {
	return f.records, f.report, f.err
}

// fakePaperSource is a canned PaperSource.
type fakePaperSource struct {
	records     []domain.Record
	report      *domain.FetchReport
	discoverErr error

	summaries map[string]driven.PaperSummary
	lookupErr error

	pdfDir      string
	downloadErr error
	downloads   []string
}

func (f *fakePaperSource) Source() string { return "semantic_scholar" }

func (f *fakePaperSource) Discover(_ context.Context) ([]domain.Record, *domain.FetchReport, error) {
	report := f.report
	if report == nil {
		report = &domain.FetchReport{Source: f.Source()}
	}
	return f.records, report, f.discoverErr
}

func (f *fakePaperSource) LookupArxiv(_ context.Context, arxivID string) (*driven.PaperSummary, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	s, ok := f.summaries[arxivID]
	if !ok {
		return nil, fmt.Errorf("%w: arXiv:%s", domain.ErrNotFound, arxivID)
	}
	return &s, nil
}

func (f *fakePaperSource) DownloadPDF(_ context.Context, arxivID, _ string) (string, error) {
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	f.downloads = append(f.downloads, arxivID)
	return f.pdfDir + "/" + arxivID + ".pdf", nil
}

// fakeIngestor returns a fixed number of records for any path.
type fakeIngestor struct {
	chunks int
	err    error
}

func (f *fakeIngestor) IngestDocument(_ context.Context, path string) ([]domain.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	records := make([]domain.Record, f.chunks)
	for i := range records {
		records[i] = domain.Record{
			ID:   fmt.Sprintf("%s_%d", path, i),
			Text: fmt.Sprintf("chunk %d", i),
			Metadata: domain.Metadata{
				Source:     path,
				DocType:    domain.DocTypePaper,
				ChunkIndex: i,
			},
		}
	}
	return records, nil
}

func (f *fakeIngestor) IngestDirectory(context.Context, string, []string) (*domain.IngestResult, error) {
	return &domain.IngestResult{}, nil
}

// fakeLLM records the last prompt and options it saw.
type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) ModelName() string { return "fake-llm" }
func (f *fakeLLM) Close() error      { return nil }
