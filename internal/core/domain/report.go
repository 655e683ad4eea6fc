package domain

// FileOutcome is the per-file result of a directory ingestion. One file's
// failure never aborts the remaining files; the outcome makes the failure
// observable instead of only printed.
type FileOutcome struct {
	// Path is the ingested file path.
	Path string

	// DocType is the inferred provenance class, empty when the file failed
	// before extraction.
	DocType DocType

	// Chunks is the number of records produced from the file.
	Chunks int

	// Err is nil on success, otherwise the per-file failure.
	Err error
}

// IngestResult aggregates a directory ingestion: the union of records from
// every file that succeeded, plus a per-file outcome tally.
type IngestResult struct {
	Records []Record
	Files   []FileOutcome
}

// Succeeded returns the number of files ingested without error.
func (r *IngestResult) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be ingested.
func (r *IngestResult) Failed() int {
	return len(r.Files) - r.Succeeded()
}

// QueryOutcome is the per-query result of a community or paper fetch run.
type QueryOutcome struct {
	// Query is the search query (possibly scoped, e.g. "r/LocalLLaMA: rag").
	Query string

	// Items is the number of records contributed after dedup and filtering.
	Items int

	// Err is nil on success; a failed query is skipped, not fatal.
	Err error
}

// FetchReport summarises one fetch run against an upstream content source.
type FetchReport struct {
	// RunID identifies the fetch run in logs.
	RunID string

	// Source names the upstream provider ("reddit", "stackoverflow",
	// "semantic_scholar").
	Source string

	// Queries holds the per-query outcomes.
	Queries []QueryOutcome

	// Fetched counts items returned by the provider before filtering.
	Fetched int

	// Deduplicated counts items dropped because their natural key was
	// already seen during this run.
	Deduplicated int

	// Filtered counts items dropped by the minimum-score filter.
	Filtered int
}

// Failures returns the number of queries that errored.
func (r *FetchReport) Failures() int {
	n := 0
	for _, q := range r.Queries {
		if q.Err != nil {
			n++
		}
	}
	return n
}
