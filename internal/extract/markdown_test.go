package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkdownExtractStripsFormatting(t *testing.T) {
	input := []byte("# Protocolo\n\nAdministrar **morfina** según pauta.\n\n```\ncodigo ignorable\n```\n")

	pages, err := markdownExtractor{}.Extract(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Contains(t, pages[0], "Protocolo")
	require.Contains(t, pages[0], "morfina")
	require.NotContains(t, pages[0], "**")
	require.NotContains(t, pages[0], "#")
}

func TestRegistryLookup(t *testing.T) {
	_, ok := For("guia.PDF")
	require.True(t, ok)
	_, ok = For("notas.md")
	require.True(t, ok)
	_, ok = For("informe.txt")
	require.True(t, ok)
	_, ok = For("foto.jpg")
	require.False(t, ok, "images are stored but have no extractor")
}
