package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/retrieval"
)

func intPtr(v int) *int { return &v }

func TestHitSource(t *testing.T) {
	withPage := model.SearchHit{DocumentName: "guia.pdf", PageNumber: intPtr(3)}
	require.Equal(t, "guia.pdf, página 3", hitSource(withPage))

	chunkHit := model.SearchHit{DocumentName: "guia.pdf"}
	require.Equal(t, "guia.pdf", hitSource(chunkHit))
}

func TestFormatHits(t *testing.T) {
	hits := []model.SearchHit{
		{DocumentName: "a.pdf", PageNumber: intPtr(1), Snippet: "sedación paliativa"},
		{DocumentName: "b.txt", Snippet: "dosis de rescate"},
	}
	out := formatHits(hits)
	require.Contains(t, out, "sedación paliativa")
	require.Contains(t, out, "(a.pdf, página 1)")
	require.Contains(t, out, "(b.txt)")
}

func TestStatusReply(t *testing.T) {
	require.Contains(t, statusReply(nil), "no tiene documentos")

	snapshot := []retrieval.Document{{Name: "a.pdf"}, {Name: "b.txt"}}
	out := statusReply(snapshot)
	require.Contains(t, out, "2 documento(s)")
	require.Contains(t, out, "a.pdf, b.txt")
}

func TestToSearchHits(t *testing.T) {
	results := []retrieval.Result{
		{Document: "a.pdf", Page: 2, Score: 0.5, Snippet: "texto"},
		{Document: "a.pdf", Page: 0, Score: 0.25, Snippet: "otro"},
	}
	hits := toSearchHits(results)
	require.Len(t, hits, 2)
	require.NotNil(t, hits[0].PageNumber)
	require.Equal(t, 2, *hits[0].PageNumber)
	require.Nil(t, hits[1].PageNumber)

	require.Nil(t, toSearchHits(nil))
}

func TestBuildPromptTruncates(t *testing.T) {
	svc := &ChatService{maxPrompt: 200}
	long := make([]model.SearchHit, 0, 50)
	for i := 0; i < 50; i++ {
		long = append(long, model.SearchHit{DocumentName: "a.pdf", Snippet: "fragmento repetido con bastante texto para desbordar"})
	}
	prompt := svc.buildPrompt("¿qué dice?", long)
	require.LessOrEqual(t, len(prompt), 200+len("\nPregunta: ¿qué dice?"))
	require.Contains(t, prompt, "Pregunta: ¿qué dice?")
}
