package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitWindowOffsets(t *testing.T) {
	// 2000 chars without sentence boundaries: windows fall exactly on the
	// target size, each next start rewinds by the overlap.
	text := strings.Repeat("a", 2000)
	seg := NewSegmenter(800, 150)

	chunks := seg.Split(text)
	require.Len(t, chunks, 3)
	require.Len(t, chunks[0], 800) // [0, 800)
	require.Len(t, chunks[1], 800) // [650, 1450)
	require.Len(t, chunks[2], 700) // [1300, 2000)
}

func TestSplitSnapsToSentenceBoundary(t *testing.T) {
	// A period 10 chars past the window edge: the chunk extends to it.
	text := strings.Repeat("a", 100) + " b c. " + strings.Repeat("d", 200)
	seg := NewSegmenter(95, 10)

	chunks := seg.Split(text)
	require.True(t, strings.HasSuffix(chunks[0], "b c."), "chunk %q should end at the sentence boundary", chunks[0])
}

func TestSplitNoBoundaryWithinLookahead(t *testing.T) {
	text := strings.Repeat("a", 500) + "."
	seg := NewSegmenter(100, 10)
	seg.Lookahead = 50

	chunks := seg.Split(text)
	require.Len(t, chunks[0], 100, "no period within lookahead, hard cut at the window edge")
}

func TestSplitTerminatesWhenOverlapExceedsSize(t *testing.T) {
	text := strings.Repeat("x", 1000)
	for _, overlap := range []int{100, 250, 1000} {
		seg := NewSegmenter(100, overlap)
		chunks := seg.Split(text)
		require.NotEmpty(t, chunks, "overlap=%d", overlap)
		require.LessOrEqual(t, len(chunks), len(text), "overlap=%d must terminate within len(text) steps", overlap)
	}
}

func TestSplitCoverageOutsideOverlaps(t *testing.T) {
	// Lowercase letters only, no periods and no trimmable whitespace, so
	// dropping each chunk's overlap prefix must reconstruct the input.
	var b strings.Builder
	for i := 0; i < 1000; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()
	size, overlap := 100, 20
	seg := NewSegmenter(size, overlap)

	chunks := seg.Split(text)
	rebuilt := chunks[0]
	for _, chunk := range chunks[1:] {
		require.GreaterOrEqual(t, len(chunk), overlap)
		rebuilt += chunk[overlap:]
	}
	require.Equal(t, text, rebuilt)
}

func TestSplitDropsWhitespaceOnlyChunks(t *testing.T) {
	seg := NewSegmenter(10, 2)
	require.Empty(t, seg.Split("    \n\n   "))
	require.Empty(t, seg.Split(""))
}

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("La dosis habitual es 5 mg. ", 100)
	seg := NewSegmenter(200, 40)
	first := seg.Split(text)
	second := seg.Split(text)
	require.Equal(t, first, second)
}
