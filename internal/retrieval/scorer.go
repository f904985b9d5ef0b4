package retrieval

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// Strategy names a relevance scoring variant.
type Strategy string

const (
	// StrategyOverlap is the default: fraction of query terms present in
	// the unit, frequency-blind.
	StrategyOverlap Strategy = "overlap"
	// StrategyOccurrence counts every occurrence of a query term in the
	// unit, rewarding density.
	StrategyOccurrence Strategy = "occurrence"
	// StrategyTFIDF weights terms by corpus rarity and scores by cosine
	// similarity. Needs a minimally sized corpus to be meaningful.
	StrategyTFIDF Strategy = "tfidf"
)

// errDegenerate marks a corpus too small or too empty for TF-IDF; the
// engine recovers by falling back to overlap scoring.
var errDegenerate = errors.New("retrieval: corpus degenerate for tfidf")

// Scorer computes a query/unit relevance score. Prepare receives the whole
// corpus before any Score call; strategies without corpus state ignore it.
// A returned score of 0 means "not a candidate".
type Scorer interface {
	Strategy() Strategy
	Prepare(units []Unit) error
	Score(query []string, unit *Unit) float64
}

// NewScorer returns the scorer for the given strategy, defaulting to
// overlap for unknown names.
func NewScorer(strategy Strategy) Scorer {
	switch strategy {
	case StrategyOccurrence:
		return occurrenceScorer{}
	case StrategyTFIDF:
		return &tfidfScorer{}
	default:
		return overlapScorer{}
	}
}

type overlapScorer struct{}

func (overlapScorer) Strategy() Strategy { return StrategyOverlap }
func (overlapScorer) Prepare(units []Unit) error { return nil }

func (overlapScorer) Score(query []string, unit *Unit) float64 {
	if len(query) == 0 {
		return 0
	}
	unitTerms := make(map[string]struct{}, len(unit.Terms))
	for _, t := range unit.Terms {
		unitTerms[t] = struct{}{}
	}
	matched := make(map[string]struct{})
	for _, q := range query {
		if _, ok := unitTerms[q]; ok {
			matched[q] = struct{}{}
		}
	}
	return float64(len(matched)) / float64(len(query))
}

type occurrenceScorer struct{}

func (occurrenceScorer) Strategy() Strategy { return StrategyOccurrence }
func (occurrenceScorer) Prepare(units []Unit) error { return nil }

func (occurrenceScorer) Score(query []string, unit *Unit) float64 {
	querySet := make(map[string]struct{}, len(query))
	for _, q := range query {
		querySet[q] = struct{}{}
	}
	count := 0
	for _, t := range unit.Terms {
		if _, ok := querySet[t]; ok {
			count++
		}
	}
	return float64(count)
}

// tfidfScorer builds a vocabulary with smoothed inverse document
// frequencies over the prepared corpus and scores by cosine similarity of
// L2-normalised tf-idf vectors.
type tfidfScorer struct {
	vocabulary map[string]int
	idf        []float64
	vectors    map[int]map[int]float64 // unit ord -> sparse vector

	lastQuery string
	queryVec  map[int]float64
}

func (*tfidfScorer) Strategy() Strategy { return StrategyTFIDF }

func (s *tfidfScorer) Prepare(units []Unit) error {
	if len(units) < 2 {
		return errDegenerate
	}
	df := make(map[string]int)
	for i := range units {
		seen := make(map[string]struct{})
		for _, t := range units[i].Terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return errDegenerate
	}
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	s.vocabulary = make(map[string]int, len(terms))
	s.idf = make([]float64, len(terms))
	n := float64(len(units))
	for i, t := range terms {
		s.vocabulary[t] = i
		s.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1.0
	}
	s.vectors = make(map[int]map[int]float64, len(units))
	for i := range units {
		s.vectors[units[i].Ord] = s.vectorize(units[i].Terms)
	}
	return nil
}

func (s *tfidfScorer) Score(query []string, unit *Unit) float64 {
	key := strings.Join(query, " ")
	if s.queryVec == nil || key != s.lastQuery {
		s.lastQuery = key
		s.queryVec = s.vectorize(query)
	}
	vec := s.vectors[unit.Ord]
	if len(vec) == 0 || len(s.queryVec) == 0 {
		return 0
	}
	// Both vectors are unit length, so the dot product is the cosine.
	dot := 0.0
	for idx, qv := range s.queryVec {
		dot += qv * vec[idx]
	}
	return dot
}

func (s *tfidfScorer) vectorize(terms []string) map[int]float64 {
	tf := make(map[int]int)
	total := 0
	for _, t := range terms {
		if idx, ok := s.vocabulary[t]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return nil
	}
	vec := make(map[int]float64, len(tf))
	norm := 0.0
	for idx, count := range tf {
		v := float64(count) / float64(total) * s.idf[idx]
		vec[idx] = v
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}
