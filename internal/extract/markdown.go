package extract

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type markdownExtractor struct{}

func init() {
	Register("md", markdownExtractor{})
	Register("markdown", markdownExtractor{})
}

// Extract renders a markdown document as a single page of plain text,
// block per line, with formatting stripped.
func (markdownExtractor) Extract(ctx context.Context, data []byte) ([]string, error) {
	_ = ctx
	md := goldmark.New()
	reader := text.NewReader(data)
	doc := md.Parser().Parse(reader)

	var blocks []string
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if block := plainText(node, data); block != "" {
			blocks = append(blocks, block)
		}
	}
	return []string{strings.Join(blocks, "\n")}, nil
}

func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			sb.WriteByte(' ')
		case *ast.FencedCodeBlock:
			for i := 0; i < v.Lines().Len(); i++ {
				line := v.Lines().At(i)
				sb.Write(line.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
