package retrieval

import (
	"strings"
	"testing"
)

func TestRankOrdering(t *testing.T) {
	long := Unit{Ord: 2, Text: strings.Repeat("x", 500)}
	short := Unit{Ord: 0, Text: strings.Repeat("x", 300)}
	top := Unit{Ord: 1, Text: strings.Repeat("x", 100)}

	ranked := Rank([]Scored{
		{Unit: &short, Score: 0.6},
		{Unit: &top, Score: 0.9},
		{Unit: &long, Score: 0.6},
	}, 3)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	if ranked[0].Unit != &top {
		t.Errorf("highest score must rank first")
	}
	// Equal scores: the longer unit wins the tie.
	if ranked[1].Unit != &long || ranked[2].Unit != &short {
		t.Errorf("length tie-break violated: got ords %d, %d", ranked[1].Unit.Ord, ranked[2].Unit.Ord)
	}
}

func TestRankLengthTieBreakCountsRunes(t *testing.T) {
	// 3 runes but 6 bytes vs 4 runes in 4 bytes: the 4-rune unit is longer
	accented := Unit{Ord: 0, Text: "ááá"}
	plain := Unit{Ord: 1, Text: "abcd"}
	ranked := Rank([]Scored{{Unit: &accented, Score: 0.5}, {Unit: &plain, Score: 0.5}}, 2)
	if ranked[0].Unit != &plain {
		t.Errorf("length tie-break must count runes, got ord %d first", ranked[0].Unit.Ord)
	}
}

func TestRankTieBreakByCorpusOrder(t *testing.T) {
	a := Unit{Ord: 0, Text: "same length"}
	b := Unit{Ord: 1, Text: "same lengtH"}
	ranked := Rank([]Scored{{Unit: &b, Score: 0.5}, {Unit: &a, Score: 0.5}}, 2)
	if ranked[0].Unit != &a {
		t.Errorf("equal score and length must fall back to corpus order")
	}
}

func TestRankTruncatesToK(t *testing.T) {
	units := make([]Scored, 10)
	for i := range units {
		units[i] = Scored{Unit: &Unit{Ord: i, Text: "u"}, Score: float64(i + 1)}
	}
	if got := len(Rank(units, 3)); got != 3 {
		t.Errorf("expected 3 results, got %d", got)
	}
}

func TestRankNonPositiveK(t *testing.T) {
	units := []Scored{{Unit: &Unit{Ord: 0, Text: "u"}, Score: 1}}
	if Rank(units, 0) != nil {
		t.Errorf("k=0 must yield no results")
	}
	if Rank(units, -1) != nil {
		t.Errorf("negative k must yield no results")
	}
}
