package retrieval

import (
	"sort"
	"unicode/utf8"
)

// Scored pairs a unit with its relevance score. Only units with a score
// above zero ever reach the ranker.
type Scored struct {
	Unit  *Unit
	Score float64
}

// Rank orders scored units by score descending, then unit text length in
// runes descending (a mild bias against fragmentary matches), then corpus order
// ascending, and truncates to k. k <= 0 yields no results. The order is
// fully deterministic.
func Rank(scored []Scored, k int) []Scored {
	if k <= 0 || len(scored) == 0 {
		return nil
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		// length in runes, not bytes: accented text must not get a
		// multibyte bonus
		li, lj := utf8.RuneCountInString(scored[i].Unit.Text), utf8.RuneCountInString(scored[j].Unit.Text)
		if li != lj {
			return li > lj
		}
		return scored[i].Unit.Ord < scored[j].Unit.Ord
	})
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}
