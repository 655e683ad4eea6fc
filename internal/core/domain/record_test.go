package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Validate(t *testing.T) {
	valid := Record{
		ID:   "doc_0_abcd1234",
		Text: "some text",
		Metadata: Metadata{
			Source:     "doc.pdf",
			DocType:    DocTypePaper,
			ChunkIndex: 0,
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *Record)
	}{
		{"empty id", func(r *Record) { r.ID = "" }},
		{"empty text", func(r *Record) { r.Text = "" }},
		{"no source", func(r *Record) { r.Metadata.Source = "" }},
		{"unknown doc type", func(r *Record) { r.Metadata.DocType = "blog" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDocType_Valid(t *testing.T) {
	for _, dt := range []DocType{
		DocTypePaper, DocTypeFramework, DocTypeGuide,
		DocTypeCommunityReddit, DocTypeCommunityStackOverflow,
		DocTypePaperSummary,
	} {
		assert.True(t, dt.Valid(), string(dt))
	}
	assert.False(t, DocType("").Valid())
	assert.False(t, DocType("blog").Valid())
}

func TestMetadata_StringsRoundTrip(t *testing.T) {
	meta := Metadata{
		Source:     "attention.pdf",
		DocType:    DocTypePaper,
		ChunkIndex: 7,
		Extra: map[string]string{
			MetaKeyTitle:   "Attention Is All You Need",
			MetaKeyArxivID: "1706.03762",
		},
	}

	flat := meta.Strings()
	assert.Equal(t, "attention.pdf", flat[MetaKeySource])
	assert.Equal(t, "paper", flat[MetaKeyDocType])
	assert.Equal(t, "7", flat[MetaKeyChunkIndex])

	parsed := MetadataFromStrings(flat)
	assert.Equal(t, meta.Source, parsed.Source)
	assert.Equal(t, meta.DocType, parsed.DocType)
	assert.Equal(t, meta.ChunkIndex, parsed.ChunkIndex)
	assert.Equal(t, "Attention Is All You Need", parsed.Extra[MetaKeyTitle])
	assert.Equal(t, "1706.03762", parsed.Extra[MetaKeyArxivID])
}

func TestMetadata_Strings_NoChunkIndex(t *testing.T) {
	meta := Metadata{
		Source:     "https://reddit.com/r/x/comments/abc/post/",
		DocType:    DocTypeCommunityReddit,
		ChunkIndex: NoChunkIndex,
	}

	flat := meta.Strings()
	_, ok := flat[MetaKeyChunkIndex]
	assert.False(t, ok)

	parsed := MetadataFromStrings(flat)
	assert.Equal(t, NoChunkIndex, parsed.ChunkIndex)
}

func TestMetadata_Strings_FixedFieldsWin(t *testing.T) {
	meta := Metadata{
		Source:     "real.pdf",
		DocType:    DocTypePaper,
		ChunkIndex: 0,
		Extra: map[string]string{
			MetaKeySource: "spoofed.pdf",
		},
	}

	flat := meta.Strings()
	assert.Equal(t, "real.pdf", flat[MetaKeySource])
}

func TestMetadataFromStrings_Nil(t *testing.T) {
	parsed := MetadataFromStrings(nil)
	assert.Equal(t, NoChunkIndex, parsed.ChunkIndex)
	assert.Empty(t, parsed.Source)
}

func TestPaperSummaryID(t *testing.T) {
	assert.Equal(t, "ss_abc123", PaperSummaryID("abc123"))
}
