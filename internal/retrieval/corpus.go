package retrieval

import (
	"sort"
	"strings"
)

// Mode selects the retrievable unit granularity.
type Mode string

const (
	// ModePage scores whole pages, keeping page-level attribution.
	ModePage Mode = "page"
	// ModeChunk re-segments each document into overlapping windows.
	ModeChunk Mode = "chunk"
)

// Document is the engine's view of one uploaded file: extracted text in
// original page order. Failed or empty pages stay in place as empty
// strings so page numbers remain meaningful.
type Document struct {
	Name  string
	Pages []string
}

// Unit is one scorable piece of a session's corpus. Ord is the position in
// corpus order and is the final ranking tie-break.
type Unit struct {
	Ord      int
	Document string
	Page     int // 1-based page number, 0 when the unit spans pages
	Text     string
	Terms    []string
}

// BuildCorpus assembles the retrievable units for a set of documents,
// iterating documents in filename order for a stable corpus order. Units
// whose text is empty or carries no terms are skipped. The corpus is
// rebuilt from scratch on every call; nothing is cached here.
func BuildCorpus(docs []Document, mode Mode, seg *Segmenter) []Unit {
	ordered := make([]Document, len(docs))
	copy(ordered, docs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	var units []Unit
	add := func(doc string, page int, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		terms := Tokenize(text)
		if len(terms) == 0 {
			return
		}
		units = append(units, Unit{
			Ord:      len(units),
			Document: doc,
			Page:     page,
			Text:     text,
			Terms:    terms,
		})
	}

	for _, doc := range ordered {
		switch mode {
		case ModeChunk:
			for _, chunk := range seg.Split(strings.Join(doc.Pages, "\n")) {
				add(doc.Name, 0, chunk)
			}
		default:
			for i, page := range doc.Pages {
				add(doc.Name, i+1, page)
			}
		}
	}
	return units
}
