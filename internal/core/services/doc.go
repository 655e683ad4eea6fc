// Package services implements the core use cases: document ingestion,
// similarity retrieval, answer generation, community harvesting and the
// paper summary-to-full-text upgrade workflow. Services depend only on
// driven ports and the domain; wiring to concrete adapters happens in the
// CLI layer.
package services
