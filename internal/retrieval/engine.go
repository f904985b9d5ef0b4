// Package retrieval implements the session-scoped lexical retrieval
// engine: text normalization, chunk segmentation, term-based relevance
// scoring, ranking and snippet extraction. The engine is pure and
// stateless between calls; it performs no I/O and holds no locks, so
// concurrent searches over independent snapshots are safe.
package retrieval

// Reason classifies an empty or non-empty result set so callers can tell
// "nothing to search" apart from "nothing matched". None of these are
// errors; a search always returns a (possibly empty) ranked list.
type Reason string

const (
	ReasonOK          Reason = "ok"
	ReasonNoMatch     Reason = "no_match"
	ReasonEmptyQuery  Reason = "empty_query"
	ReasonEmptyCorpus Reason = "empty_corpus"
)

// Options are the recognized engine settings. Zero values fall back to
// defaults. ChunkOverlap is special: 0 means the default, any negative
// value means no overlap at all.
type Options struct {
	Mode          Mode
	ChunkSize     int
	ChunkOverlap  int
	Strategy      Strategy
	SnippetWindow int
	TopKDefault   int
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModePage
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.ChunkOverlap == 0 {
		o.ChunkOverlap = DefaultChunkOverlap
	} else if o.ChunkOverlap < 0 {
		o.ChunkOverlap = 0
	}
	if o.Strategy == "" {
		o.Strategy = StrategyOverlap
	}
	if o.SnippetWindow <= 0 {
		o.SnippetWindow = DefaultSnippetWindow
	}
	if o.TopKDefault <= 0 {
		o.TopKDefault = 3
	}
	return o
}

// Result is one ranked hit. Page is 0 when the unit has no page
// attribution (chunk mode).
type Result struct {
	Document string
	Page     int
	Score    float64
	Snippet  string
}

// Response carries the ranked results, the classification of the outcome
// and the strategy actually used (which differs from the configured one
// when tf-idf degrades to overlap).
type Response struct {
	Results  []Result
	Reason   Reason
	Strategy Strategy
}

type Engine struct {
	opts Options
	seg  *Segmenter
}

func NewEngine(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{opts: opts, seg: NewSegmenter(opts.ChunkSize, opts.ChunkOverlap)}
}

// Search scores the session's documents against the query and returns the
// top-k results. topK <= 0 uses the configured default. The corpus is
// rebuilt from docs on every call; repeated calls with the same inputs
// return identical output.
func (e *Engine) Search(docs []Document, query string, topK int) Response {
	if topK <= 0 {
		topK = e.opts.TopKDefault
	}
	terms := Tokenize(query)
	if len(terms) == 0 {
		return Response{Reason: ReasonEmptyQuery, Strategy: e.opts.Strategy}
	}
	units := BuildCorpus(docs, e.opts.Mode, e.seg)
	if len(units) == 0 {
		return Response{Reason: ReasonEmptyCorpus, Strategy: e.opts.Strategy}
	}

	scorer := NewScorer(e.opts.Strategy)
	if err := scorer.Prepare(units); err != nil {
		scorer = NewScorer(StrategyOverlap)
	}

	var scored []Scored
	for i := range units {
		score := scorer.Score(terms, &units[i])
		if score > 0 {
			scored = append(scored, Scored{Unit: &units[i], Score: score})
		}
	}
	if len(scored) == 0 {
		return Response{Reason: ReasonNoMatch, Strategy: scorer.Strategy()}
	}

	results := make([]Result, 0, topK)
	for _, s := range Rank(scored, topK) {
		snippet := Snippet(s.Unit.Text, terms, e.opts.SnippetWindow)
		if snippet == "" {
			continue
		}
		results = append(results, Result{
			Document: s.Unit.Document,
			Page:     s.Unit.Page,
			Score:    s.Score,
			Snippet:  snippet,
		})
	}
	if len(results) == 0 {
		return Response{Reason: ReasonNoMatch, Strategy: scorer.Strategy()}
	}
	return Response{Results: results, Reason: ReasonOK, Strategy: scorer.Strategy()}
}
