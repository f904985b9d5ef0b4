package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnippetCentersOnFirstHit(t *testing.T) {
	text := strings.Repeat("relleno ", 50) + "la dosis de MORFINA recomendada" + strings.Repeat(" relleno", 50)
	got := Snippet(text, []string{"morfina"}, 60)

	require.Contains(t, got, "MORFINA")
	require.True(t, strings.HasPrefix(got, ellipsis), "window start inside text needs a leading marker")
	require.True(t, strings.HasSuffix(got, ellipsis), "window end inside text needs a trailing marker")
}

func TestSnippetMatchesFoldedTerms(t *testing.T) {
	text := "Administración de analgesia según protocolo."
	got := Snippet(text, []string{"administracion"}, 220)
	require.Contains(t, got, "Administración")
}

func TestSnippetBounds(t *testing.T) {
	window := 40
	texts := []string{
		"corto",
		strings.Repeat("palabra ", 100),
		strings.Repeat("x", 39),
		strings.Repeat("x", 41),
	}
	for _, text := range texts {
		got := Snippet(text, []string{"palabra"}, window)
		require.LessOrEqual(t, len([]rune(got)), window+2, "text %q", text)
	}
}

func TestSnippetIsSubstringModuloMarkers(t *testing.T) {
	text := strings.Repeat("uno dos tres. ", 30)
	got := Snippet(text, []string{"tres"}, 50)
	require.Contains(t, text, strings.Trim(got, ellipsis))
}

func TestSnippetNoHitFallsBackToLeadingWindow(t *testing.T) {
	text := "Primera parte del documento. " + strings.Repeat("resto ", 40)
	got := Snippet(text, []string{"ausente"}, 30)
	require.True(t, strings.HasPrefix(got, "Primera parte"))
	require.True(t, strings.HasSuffix(got, ellipsis))
}

func TestSnippetEmptyText(t *testing.T) {
	require.Equal(t, "", Snippet("", []string{"algo"}, 100))
	require.Equal(t, "", Snippet("   ", []string{"algo"}, 100))
}
