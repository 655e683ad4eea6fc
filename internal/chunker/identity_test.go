package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeID_Deterministic(t *testing.T) {
	a := MakeID("paper.pdf", 3, "some chunk text")
	b := MakeID("paper.pdf", 3, "some chunk text")

	assert.Equal(t, a, b)
}

func TestMakeID_Shape(t *testing.T) {
	id := MakeID("attention.pdf", 0, "hello world")

	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "attention", parts[0])
	assert.Equal(t, "0", parts[1])
	assert.Len(t, parts[2], 8)
	assert.Regexp(t, "^[0-9a-f]{8}$", parts[2])
}

func TestMakeID_VariesWithInputs(t *testing.T) {
	base := MakeID("doc.md", 1, "text")

	assert.NotEqual(t, base, MakeID("doc.md", 2, "text"))
	assert.NotEqual(t, base, MakeID("doc.md", 1, "other text"))
	assert.NotEqual(t, base, MakeID("more.md", 1, "text"))
}

func TestMakeID_StripsPathAndExtension(t *testing.T) {
	assert.Equal(t,
		MakeID("guide.txt", 0, "x"),
		MakeID("/some/deep/dir/guide.txt", 0, "x"))
}
