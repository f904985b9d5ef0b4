package retrieval

import "strings"

// DefaultSnippetWindow is the excerpt width in runes.
const DefaultSnippetWindow = 220

const ellipsis = "…"

// Snippet extracts a window-sized excerpt of text centered on the first
// occurrence of any query term, with ellipsis markers on the truncated
// sides. If no term occurs the leading window is returned. Empty text
// yields an empty snippet. The result is at most window+2 runes.
func Snippet(text string, query []string, window int) string {
	if window <= 0 {
		window = DefaultSnippetWindow
	}
	orig := []rune(text)
	n := len(orig)
	if n == 0 {
		return ""
	}

	folded := make([]rune, n)
	for i, r := range orig {
		folded[i] = foldRune(r)
	}
	hit := firstHit(string(folded), query)

	start := 0
	if hit >= 0 {
		start = hit - window/2
	}
	if start > n-window {
		start = n - window
	}
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > n {
		end = n
	}

	snippet := strings.TrimSpace(string(orig[start:end]))
	if snippet == "" {
		return ""
	}
	if start > 0 {
		snippet = ellipsis + snippet
	}
	if end < n {
		snippet += ellipsis
	}
	return snippet
}

// firstHit returns the rune offset of the earliest query term occurrence
// in the folded text, or -1.
func firstHit(folded string, query []string) int {
	best := -1
	for _, term := range query {
		byteIdx := strings.Index(folded, term)
		if byteIdx < 0 {
			continue
		}
		runeIdx := len([]rune(folded[:byteIdx]))
		if best < 0 || runeIdx < best {
			best = runeIdx
		}
	}
	return best
}
