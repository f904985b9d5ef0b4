package extract

import "context"

type textExtractor struct{}

func init() {
	Register("txt", textExtractor{})
}

func (textExtractor) Extract(ctx context.Context, data []byte) ([]string, error) {
	_ = ctx
	return []string{string(data)}, nil
}
