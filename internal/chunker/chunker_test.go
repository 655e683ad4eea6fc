package chunker

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words builds a paragraph of n distinct words.
func words(prefix string, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(out, " ")
}

func TestChunk_Empty(t *testing.T) {
	c := New()

	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("\n\n\n\n"))
	assert.Empty(t, c.Chunk("   \n\n   "))
}

func TestChunk_SingleParagraphFits(t *testing.T) {
	c := New(WithTargetSize(10), WithOverlapRatio(0.2))

	chunks := c.Chunk("one two three four five")
	require.Len(t, chunks, 1)
	assert.Equal(t, "one two three four five", chunks[0])
}

func TestChunk_ParagraphsAccumulate(t *testing.T) {
	c := New(WithTargetSize(10), WithOverlapRatio(0))

	// 4 + 4 words fit together, the third paragraph overflows.
	text := words("a", 4) + "\n\n" + words("b", 4) + "\n\n" + words("c", 4)
	chunks := c.Chunk(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, words("a", 4)+" "+words("b", 4), chunks[0])
	assert.Equal(t, words("c", 4), chunks[1])
}

func TestChunk_OverlapSeedsNextChunk(t *testing.T) {
	c := New(WithTargetSize(10), WithOverlapRatio(0.2))

	text := words("a", 6) + "\n\n" + words("b", 6)
	chunks := c.Chunk(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, words("a", 6), chunks[0])
	// 20% of 10 = 2 trailing words of the first chunk lead the second.
	assert.Equal(t, "a4 a5 "+words("b", 6), chunks[1])
}

func TestChunk_OverlapFromJoinedChunk(t *testing.T) {
	// The overlap is taken from the tail of the emitted chunk string, so it
	// can span a paragraph boundary inside that chunk.
	c := New(WithTargetSize(8), WithOverlapRatio(0.5))

	text := words("a", 3) + "\n\n" + words("b", 3) + "\n\n" + words("c", 5)
	chunks := c.Chunk(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, words("a", 3)+" "+words("b", 3), chunks[0])
	// 4 overlap words: a2 from the first paragraph, all of the second.
	assert.Equal(t, "a2 b0 b1 b2 "+words("c", 5), chunks[1])
}

func TestChunk_OversizedParagraphFallsBackToSentences(t *testing.T) {
	c := New(WithTargetSize(6), WithOverlapRatio(0))

	para := "one two three four. five six seven eight. nine ten"
	chunks := c.Chunk(para)

	require.Len(t, chunks, 2)
	assert.Equal(t, "one two three four.", chunks[0])
	assert.Equal(t, "five six seven eight. nine ten.", chunks[1])
}

func TestChunk_OversizedParagraphFlushesAccumulator(t *testing.T) {
	c := New(WithTargetSize(6), WithOverlapRatio(0))

	text := words("a", 3) + "\n\n" + "one two three. four five six. seven"
	chunks := c.Chunk(text)

	require.GreaterOrEqual(t, len(chunks), 2)
	// The pending paragraph is emitted alone before the sentence fallback.
	assert.Equal(t, words("a", 3), chunks[0])
	assert.Equal(t, "one two three. four five six.", chunks[1])
}

func TestChunk_GiantSentenceEmittedWhole(t *testing.T) {
	c := New(WithTargetSize(5), WithOverlapRatio(0))

	sent := words("w", 12) // no ". " inside, cannot be split further
	chunks := c.Chunk(sent)

	require.Len(t, chunks, 1)
	assert.Equal(t, sent+".", chunks[0])
}

func TestChunk_SentenceOverlap(t *testing.T) {
	c := New(WithTargetSize(6), WithOverlapRatio(0.5))

	para := "one two three four five. six seven eight nine ten"
	chunks := c.Chunk(para)

	require.Len(t, chunks, 2)
	assert.Equal(t, "one two three four five.", chunks[0])
	// 3 trailing words of the emitted chunk (punctuation preserved) seed
	// the next group as a pseudo-sentence.
	assert.Equal(t, "three four five.. six seven eight nine ten.", chunks[1])
}

func TestChunk_DefaultsProduceReasonableChunks(t *testing.T) {
	c := New()

	var paras []string
	for i := 0; i < 10; i++ {
		paras = append(paras, words(fmt.Sprintf("p%d_", i), 200))
	}
	chunks := c.Chunk(strings.Join(paras, "\n\n"))

	require.NotEmpty(t, chunks)
	maxSize := DefaultTargetSize + int(math.Round(DefaultOverlapRatio*float64(DefaultTargetSize))) + 1
	for _, chunk := range chunks {
		size := len(strings.Fields(chunk))
		assert.LessOrEqual(t, size, maxSize)
	}
	// Every word of the input must appear in some chunk.
	joined := strings.Join(chunks, " ")
	assert.Contains(t, joined, "p0_0")
	assert.Contains(t, joined, "p9_199")
}

func TestNew_OptionValidation(t *testing.T) {
	c := New(WithTargetSize(-1), WithOverlapRatio(1.5))

	assert.Equal(t, DefaultTargetSize, c.TargetSize())
	// Invalid ratio keeps the default; chunking still behaves.
	assert.NotEmpty(t, c.Chunk("hello world"))
}
