package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension with no registered
	// extractor. Fatal to that single file only.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailed indicates the format parser could not produce text
	// (corrupt PDF, bad encoding). Caught per file during directory ingestion.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrRateLimited indicates an upstream content API returned a throttling
	// signal after all retries were exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmbeddingFailed indicates the embedding service was unavailable or
	// errored. Fatal for the whole batch; batches are never partially embedded.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer generation is disabled; retrieval still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
