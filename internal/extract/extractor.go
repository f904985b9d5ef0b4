// Package extract converts uploaded document bytes into plain text, one
// string per logical page. Extractors register by file extension, the same
// registry pattern the file store uses for its backends.
package extract

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
)

// Extractor produces the page texts of a document. A page that cannot be
// extracted must come back as an empty string, never be dropped, so page
// numbers stay meaningful downstream.
type Extractor interface {
	Extract(ctx context.Context, data []byte) ([]string, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Extractor{}
)

func Register(ext string, e Extractor) {
	key := normalizeExt(ext)
	if key == "" || e == nil {
		return
	}
	registryMu.Lock()
	registry[key] = e
	registryMu.Unlock()
}

// For returns the extractor for a filename's extension. Whitelisted but
// non-extractable formats (images without OCR) have no extractor; they
// contribute zero pages.
func For(filename string) (Extractor, bool) {
	key := normalizeExt(filepath.Ext(filename))
	registryMu.RLock()
	e, ok := registry[key]
	registryMu.RUnlock()
	return e, ok
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
