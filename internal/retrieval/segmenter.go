package retrieval

import "strings"

const (
	// DefaultChunkSize and DefaultChunkOverlap are rune counts tuned for
	// dense prose; both are configurable per engine.
	DefaultChunkSize    = 850
	DefaultChunkOverlap = 150

	// defaultLookahead bounds how far past the window edge the segmenter
	// searches for a sentence boundary before giving up and cutting hard.
	defaultLookahead = 200
)

// Segmenter splits raw document text into overlapping windows snapped to
// sentence boundaries when one is close enough. It is deterministic for a
// fixed input and settings, and terminates for any size/overlap pair,
// including overlap >= size.
type Segmenter struct {
	Size      int
	Overlap   int
	Lookahead int
}

func NewSegmenter(size, overlap int) *Segmenter {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Segmenter{Size: size, Overlap: overlap, Lookahead: defaultLookahead}
}

// Split returns the chunks of text in order. Chunks are trimmed and chunks
// that trim to nothing are dropped. When the window edge falls inside the
// text, the chunk is extended to the first period found within Lookahead
// runes past the edge, so sentences are not cut when a boundary is near.
func (s *Segmenter) Split(text string) []string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}
	var chunks []string
	start := 0
	for start < n {
		end := start + s.Size
		if end >= n {
			end = n
		} else {
			end = s.snapToSentence(runes, end)
		}
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end >= n {
			break
		}
		next := end - s.Overlap
		if next <= start {
			// Overlap would rewind past the previous start; step to the
			// window edge instead so the scan always advances.
			next = end
		}
		start = next
	}
	return chunks
}

func (s *Segmenter) snapToSentence(runes []rune, edge int) int {
	limit := edge + s.Lookahead
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := edge; i < limit; i++ {
		if runes[i] == '.' {
			return i + 1
		}
	}
	return edge
}
