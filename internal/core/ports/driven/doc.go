// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): extraction, embedding, vector storage,
// upstream content APIs and answer generation.
package driven
