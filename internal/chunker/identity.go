package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
)

// hashPrefixLen is the number of hex characters of the content hash kept in
// a chunk id. Truncation keeps ids readable; the collision probability for
// two distinct chunks at the same index is accepted as negligible at corpus
// scale.
const hashPrefixLen = 8

// MakeID derives the stable content-addressed identifier for a chunk:
// {stem(source)}_{index}_{first 8 hex chars of SHA-256(text)}.
//
// It is pure: the same (source, index, text) always yields the same id,
// across processes and restarts, which is what makes re-ingestion idempotent.
func MakeID(sourceName string, chunkIndex int, text string) string {
	sum := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(sum[:])[:hashPrefixLen]
	return fmt.Sprintf("%s_%d_%s", stem(sourceName), chunkIndex, digest)
}

// stem returns the base name of a path without its extension.
func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
