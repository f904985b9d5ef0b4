package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/extract"
	"github.com/xxxsen/docchat/internal/filestore"
	"github.com/xxxsen/docchat/internal/model"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
	"github.com/xxxsen/docchat/internal/pkg/timeutil"
	"github.com/xxxsen/docchat/internal/repo"
	"github.com/xxxsen/docchat/internal/retrieval"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename strips path components and anything outside a safe
// character set. An unusable name comes back empty; the caller generates
// one instead.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

type SessionService struct {
	sessions *repo.SessionRepo
	docs     *repo.DocumentRepo
	store    filestore.Store
	cache    *expirable.LRU[string, []retrieval.Document]
	maxSize  int64
	allowed  map[string]struct{}
}

func NewSessionService(sessions *repo.SessionRepo, docs *repo.DocumentRepo, store filestore.Store, maxSizeMB int, allowedExts []string) *SessionService {
	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}
	cache := expirable.NewLRU[string, []retrieval.Document](1000, nil, 10*time.Minute)
	return &SessionService{
		sessions: sessions,
		docs:     docs,
		store:    store,
		cache:    cache,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		allowed:  allowed,
	}
}

// Ensure resolves a session id to a live session, creating it on first
// reference. An empty id mints a fresh one. Atime advances either way.
func (s *SessionService) Ensure(ctx context.Context, id string) (*model.Session, error) {
	now := timeutil.NowUnix()
	if id == "" {
		id = newID()
	}
	ses, err := s.sessions.Get(ctx, id)
	if appErr.IsNotFound(err) {
		ses = &model.Session{ID: id, Ctime: now, Atime: now}
		if createErr := s.sessions.Create(ctx, ses); createErr != nil && createErr != appErr.ErrConflict {
			return nil, createErr
		}
		return ses, nil
	}
	if err != nil {
		return nil, err
	}
	ses.Atime = now
	if err := s.sessions.Touch(ctx, id, now); err != nil {
		return nil, err
	}
	return ses, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	return s.sessions.Get(ctx, id)
}

// AddFile stores an uploaded file, extracts its page texts and registers
// the document in the session. Uploading a name that already exists in the
// session returns ErrConflict.
func (s *SessionService) AddFile(ctx context.Context, sessionID, filename, contentType string, data []byte) (*model.Document, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("session_id", sessionID), zap.String("filename", filename))
	if int64(len(data)) > s.maxSize {
		return nil, appErr.ErrFileTooLarge
	}
	name := SanitizeFilename(filename)
	ext := strings.ToLower(filepath.Ext(name))
	if name == "" {
		ext = strings.ToLower(filepath.Ext(filename))
		name = "archivo_" + newID()[:8] + ext
	}
	if _, ok := s.allowed[ext]; !ok {
		return nil, appErr.ErrUnsupportedFile
	}

	var pages []string
	if extractor, ok := extract.For(name); ok {
		extracted, err := extractor.Extract(ctx, data)
		if err != nil {
			// keep the document with zero pages; the bytes stay
			// downloadable even when text extraction fails
			logger.Warn("extract document text failed", zap.Error(err))
		} else {
			pages = extracted
		}
	}

	now := timeutil.NowUnix()
	doc := &model.Document{
		ID:          newID(),
		SessionID:   sessionID,
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		PageCount:   len(pages),
		StoreKey:    fmt.Sprintf("%s_%s%s", sessionID, newID()[:8], ext),
		Ctime:       now,
	}
	if err := s.store.Save(ctx, doc.StoreKey, bytes.NewReader(data), doc.Size); err != nil {
		logger.Error("save file to store failed", zap.Error(err))
		return nil, err
	}
	if err := s.docs.Create(ctx, doc, pages); err != nil {
		if delErr := s.store.Delete(ctx, doc.StoreKey); delErr != nil {
			logger.Error("rollback stored file failed", zap.Error(delErr))
		}
		return nil, err
	}
	s.cache.Remove(sessionID)
	logger.Info("document added", zap.String("doc_id", doc.ID), zap.Int("pages", doc.PageCount), zap.Int64("size", doc.Size))
	return doc, nil
}

func (s *SessionService) ListFiles(ctx context.Context, sessionID string) ([]model.Document, error) {
	return s.docs.ListBySession(ctx, sessionID)
}

// OpenFile returns the stored original bytes of a named document.
func (s *SessionService) OpenFile(ctx context.Context, sessionID, name string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.docs.GetByName(ctx, sessionID, name)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, doc.StoreKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// Snapshot materializes the session's documents as retrieval input, page
// texts in page order and documents in name order. Snapshots are cached
// per session and invalidated on upload.
func (s *SessionService) Snapshot(ctx context.Context, sessionID string) ([]retrieval.Document, error) {
	if cached, ok := s.cache.Get(sessionID); ok {
		return cached, nil
	}
	docs, err := s.docs.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snapshot := make([]retrieval.Document, 0, len(docs))
	for _, doc := range docs {
		pages, err := s.docs.ListPages(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, retrieval.Document{Name: doc.Name, Pages: pages})
	}
	s.cache.Add(sessionID, snapshot)
	return snapshot, nil
}

// CleanupIdle removes sessions idle past the ttl, together with their
// rows and stored files. Returns the number of sessions removed.
func (s *SessionService) CleanupIdle(ctx context.Context, ttl time.Duration, limit int) (int, error) {
	logger := logutil.GetLogger(ctx)
	cutoff := timeutil.NowUnix() - int64(ttl.Seconds())
	idle, err := s.sessions.ListIdleBefore(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, ses := range idle {
		keys, err := s.docs.ListStoreKeys(ctx, ses.ID)
		if err != nil {
			logger.Error("list store keys failed", zap.String("session_id", ses.ID), zap.Error(err))
			continue
		}
		for _, key := range keys {
			if err := s.store.Delete(ctx, key); err != nil {
				logger.Error("delete stored file failed", zap.String("key", key), zap.Error(err))
			}
		}
		if err := s.sessions.Delete(ctx, ses.ID); err != nil {
			logger.Error("delete session failed", zap.String("session_id", ses.ID), zap.Error(err))
			continue
		}
		s.cache.Remove(ses.ID)
		removed++
	}
	return removed, nil
}
