package retrieval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func unitFromText(ord int, text string) Unit {
	return Unit{Ord: ord, Document: "doc.pdf", Page: ord + 1, Text: text, Terms: Tokenize(text)}
}

func TestOverlapScore(t *testing.T) {
	unit := unitFromText(0, "El paciente recibió 5 mg de morfina cada 4 horas.")

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"half the terms present", "morfina dosis", 0.5},
		{"all terms present", "morfina paciente", 1.0},
		{"no terms present", "oxigeno ventilador", 0},
		{"presence counted once per term", "morfina morfina", 0.5},
	}
	scorer := NewScorer(StrategyOverlap)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(Tokenize(tt.query), &unit)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOverlapScoreMonotonicInMatches(t *testing.T) {
	// For a fixed query, a unit matching more distinct terms never scores
	// lower than one matching fewer.
	query := Tokenize("morfina fentanilo naloxona")
	one := unitFromText(0, "administrar morfina lentamente")
	two := unitFromText(1, "morfina o fentanilo según respuesta")

	scorer := NewScorer(StrategyOverlap)
	require.Greater(t, scorer.Score(query, &two), scorer.Score(query, &one))
}

func TestOccurrenceScoreRewardsDensity(t *testing.T) {
	sparse := unitFromText(0, "la morfina se administra con precaución")
	dense := unitFromText(1, "morfina: titular morfina hasta efecto, registrar morfina administrada")

	scorer := NewScorer(StrategyOccurrence)
	query := Tokenize("morfina")
	require.Equal(t, 1.0, scorer.Score(query, &sparse))
	require.Equal(t, 3.0, scorer.Score(query, &dense))
}

func TestTFIDFPrefersRareTerms(t *testing.T) {
	units := []Unit{
		unitFromText(0, "protocolo ventilación protocolo traslado"),
		unitFromText(1, "protocolo sedación con midazolam"),
		unitFromText(2, "protocolo analgesia con morfina intravenosa"),
	}
	scorer := NewScorer(StrategyTFIDF)
	require.NoError(t, scorer.Prepare(units))

	// "morfina" appears in one unit, "protocolo" in all three; the unit
	// holding the rare term must dominate a query that mixes both.
	query := Tokenize("protocolo morfina")
	best := scorer.Score(query, &units[2])
	for i := 0; i < 2; i++ {
		require.Greater(t, best, scorer.Score(query, &units[i]))
	}
}

func TestTFIDFDegenerateCorpus(t *testing.T) {
	scorer := NewScorer(StrategyTFIDF)
	require.ErrorIs(t, scorer.Prepare(nil), errDegenerate)

	scorer = NewScorer(StrategyTFIDF)
	single := []Unit{unitFromText(0, "texto suficiente para una unidad")}
	require.ErrorIs(t, scorer.Prepare(single), errDegenerate)
}

func TestNewScorerUnknownStrategyFallsBackToOverlap(t *testing.T) {
	require.Equal(t, StrategyOverlap, NewScorer("bm25").Strategy())
}
