package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
)

type pdfExtractor struct{}

func init() {
	Register("pdf", pdfExtractor{})
}

// Extract returns one string per PDF page, in page order. A page whose
// text cannot be read becomes an empty string.
func (pdfExtractor) Extract(ctx context.Context, data []byte) ([]string, error) {
	_ = ctx
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
	}
	return pages, nil
}
