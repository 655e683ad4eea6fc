package domain

import (
	"fmt"
	"strconv"
)

// DocType is the provenance class of a record. It is a closed set used for
// filtering and for the summary-to-full-text upgrade workflow.
type DocType string

const (
	// DocTypePaper is full text extracted from a paper PDF.
	DocTypePaper DocType = "paper"

	// DocTypeFramework is framework or library documentation.
	DocTypeFramework DocType = "framework"

	// DocTypeGuide is a plain-text guide or note.
	DocTypeGuide DocType = "guide"

	// DocTypeCommunityReddit is a Reddit discussion post.
	DocTypeCommunityReddit DocType = "community_reddit"

	// DocTypeCommunityStackOverflow is a StackOverflow question.
	DocTypeCommunityStackOverflow DocType = "community_stackoverflow"

	// DocTypePaperSummary is a lightweight paper summary from Semantic
	// Scholar, upgradeable to full PDF content on demand.
	DocTypePaperSummary DocType = "paper_summary"
)

// Valid reports whether dt is one of the known provenance classes.
func (dt DocType) Valid() bool {
	switch dt {
	case DocTypePaper, DocTypeFramework, DocTypeGuide,
		DocTypeCommunityReddit, DocTypeCommunityStackOverflow,
		DocTypePaperSummary:
		return true
	}
	return false
}

// Well-known metadata keys used in the flattened at-rest form.
const (
	MetaKeySource     = "source"
	MetaKeyDocType    = "doc_type"
	MetaKeyChunkIndex = "chunk_index"

	// Optional keys set by specific origins.
	MetaKeyChunkID    = "chunk_id"
	MetaKeyTitle      = "title"
	MetaKeyScore      = "score"
	MetaKeyTags       = "tags"
	MetaKeyYear       = "year"
	MetaKeyCitations  = "citations"
	MetaKeyArxivID    = "arxiv_id"
	MetaKeyHasFullPDF = "has_full_pdf"
)

// NoChunkIndex marks records that are not derived from document chunking
// (community posts, paper summaries).
const NoChunkIndex = -1

// Metadata carries the fixed required provenance fields plus an open
// extension map for origin-specific fields. At rest every value is a string;
// Strings and MetadataFromStrings perform the conversion explicitly.
type Metadata struct {
	// Source is the originating document or URL identifier. It must resolve
	// back to a human-meaningful origin: a filename, a URL, or
	// "semantic_scholar:<paper_id>".
	Source string

	// DocType is the provenance class.
	DocType DocType

	// ChunkIndex is the chunk's position within its source document, or
	// NoChunkIndex for records that are not document chunks.
	ChunkIndex int

	// Extra holds origin-specific fields (title, score, tags, year,
	// citations, arxiv_id, has_full_pdf, ...). Values are already strings.
	Extra map[string]string
}

// Strings flattens the metadata to the all-string at-rest form.
// Fixed fields win over identically named Extra entries.
func (m Metadata) Strings() map[string]string {
	out := make(map[string]string, len(m.Extra)+3)
	for k, v := range m.Extra {
		out[k] = v
	}
	out[MetaKeySource] = m.Source
	out[MetaKeyDocType] = string(m.DocType)
	if m.ChunkIndex != NoChunkIndex {
		out[MetaKeyChunkIndex] = strconv.Itoa(m.ChunkIndex)
	} else {
		delete(out, MetaKeyChunkIndex)
	}
	return out
}

// MetadataFromStrings parses the at-rest form back into structured metadata.
// Unknown keys are preserved in Extra.
func MetadataFromStrings(raw map[string]string) Metadata {
	m := Metadata{ChunkIndex: NoChunkIndex}
	if raw == nil {
		return m
	}
	m.Extra = make(map[string]string)
	for k, v := range raw {
		switch k {
		case MetaKeySource:
			m.Source = v
		case MetaKeyDocType:
			m.DocType = DocType(v)
		case MetaKeyChunkIndex:
			if idx, err := strconv.Atoi(v); err == nil {
				m.ChunkIndex = idx
			}
		default:
			m.Extra[k] = v
		}
	}
	if len(m.Extra) == 0 {
		m.Extra = nil
	}
	return m
}

// Record is the uniform unit exchanged between ingestion, content adapters
// and the vector store: the text to embed, its provenance metadata, and a
// deterministic content-addressed identifier.
type Record struct {
	// ID is globally unique within a store and deterministic for the same
	// source, position and content, so re-ingestion is idempotent.
	ID string

	// Text is the content to embed and display. Never empty.
	Text string

	// Metadata is the structured provenance of this record.
	Metadata Metadata
}

// NewRecord builds a validated record. A record that would corrupt the
// uniform contract (missing id, empty text, unresolvable source, unknown
// doc type) fails here rather than being silently coerced downstream.
func NewRecord(id, text string, meta Metadata) (Record, error) {
	r := Record{ID: id, Text: text, Metadata: meta}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks the record invariants.
func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: record id is empty", ErrInvalidInput)
	}
	if r.Text == "" {
		return fmt.Errorf("%w: record %q has empty text", ErrInvalidInput, r.ID)
	}
	if r.Metadata.Source == "" {
		return fmt.Errorf("%w: record %q has no source", ErrInvalidInput, r.ID)
	}
	if !r.Metadata.DocType.Valid() {
		return fmt.Errorf("%w: record %q has unknown doc type %q",
			ErrInvalidInput, r.ID, r.Metadata.DocType)
	}
	return nil
}
