// Package chunker splits document text into overlapping, size-bounded chunks
// and derives stable content-addressed chunk identifiers.
package chunker

import (
	"math"
	"strings"
)

// DefaultTargetSize is the default chunk size in words.
const DefaultTargetSize = 512

// DefaultOverlapRatio is the default fraction of a chunk carried into the
// next one.
const DefaultOverlapRatio = 0.1

// Chunker splits text into chunks using a paragraph-first strategy with a
// sentence-level fallback for oversized paragraphs.
//
// Size is measured as whitespace-split word count. That is an approximation
// of token count, traded deliberately for determinism and language
// independence.
type Chunker struct {
	targetSize   int
	overlapRatio float64
}

// Option configures the chunker.
type Option func(*Chunker)

// WithTargetSize sets the target chunk size in words.
func WithTargetSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.targetSize = size
		}
	}
}

// WithOverlapRatio sets the overlap ratio. Valid values are in [0, 1).
func WithOverlapRatio(ratio float64) Option {
	return func(c *Chunker) {
		if ratio >= 0 && ratio < 1 {
			c.overlapRatio = ratio
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		targetSize:   DefaultTargetSize,
		overlapRatio: DefaultOverlapRatio,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TargetSize returns the configured chunk size in words.
func (c *Chunker) TargetSize() int {
	return c.targetSize
}

// Chunk splits text into an ordered sequence of chunks.
//
// Paragraphs (blank-line separated) are accumulated until adding one would
// exceed the target size; the accumulator is then emitted and the next chunk
// is seeded with the trailing overlap words of the emitted text. A paragraph
// that alone exceeds the target size is re-split on the ". " sentence
// delimiter and the same fit/flush/overlap logic is applied per sentence.
//
// The overlap word count is computed once from the target size, not from the
// emitted chunk length, so a short final chunk may contribute fewer overlap
// words than requested. That is expected behaviour.
//
// Empty input returns an empty sequence. A single sentence longer than the
// target size is emitted whole, never truncated.
func (c *Chunker) Chunk(text string) []string {
	overlap := int(math.Round(float64(c.targetSize) * c.overlapRatio))

	var chunks []string
	var acc []string
	accSize := 0

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		paraSize := len(strings.Fields(para))

		if paraSize > c.targetSize {
			// Too large to fit a chunk alone: flush whatever is pending,
			// then fall back to sentence granularity.
			if len(acc) > 0 {
				chunks = append(chunks, strings.Join(acc, " "))
				acc = nil
				accSize = 0
			}
			chunks = append(chunks, c.chunkSentences(para, overlap)...)
			continue
		}

		if accSize+paraSize > c.targetSize && len(acc) > 0 {
			emitted := strings.Join(acc, " ")
			chunks = append(chunks, emitted)
			acc = acc[:0]
			accSize = 0
			if seed := tailWords(emitted, overlap); seed != "" {
				acc = append(acc, seed)
				accSize = len(strings.Fields(seed))
			}
		}

		acc = append(acc, para)
		accSize += paraSize
	}

	if len(acc) > 0 {
		chunks = append(chunks, strings.Join(acc, " "))
	}
	return chunks
}

// chunkSentences splits an oversized paragraph on the ". " delimiter and
// groups sentences with the same fit/flush/overlap logic. Emitted groups are
// re-joined with ". " and terminated with a period.
func (c *Chunker) chunkSentences(para string, overlap int) []string {
	var chunks []string
	var acc []string
	accSize := 0

	for _, sent := range strings.Split(para, ". ") {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		sentSize := len(strings.Fields(sent))

		if accSize+sentSize > c.targetSize && len(acc) > 0 {
			emitted := strings.Join(acc, ". ") + "."
			chunks = append(chunks, emitted)
			acc = acc[:0]
			accSize = 0
			if seed := tailWords(emitted, overlap); seed != "" {
				acc = append(acc, seed)
				accSize = len(strings.Fields(seed))
			}
		}

		acc = append(acc, sent)
		accSize += sentSize
	}

	if len(acc) > 0 {
		chunks = append(chunks, strings.Join(acc, ". ")+".")
	}
	return chunks
}

// tailWords returns the trailing n words of s joined by single spaces.
// The slice is taken from the already-joined chunk string, not from any
// structured token accounting.
func tailWords(s string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}
