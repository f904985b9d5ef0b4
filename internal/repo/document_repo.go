package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/pkg/dbutil"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create inserts the document and all its pages in one transaction. Empty
// pages are stored as empty rows so page numbering survives round trips.
func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document, pages []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	data := map[string]interface{}{
		"id":           doc.ID,
		"session_id":   doc.SessionID,
		"name":         doc.Name,
		"content_type": doc.ContentType,
		"size":         doc.Size,
		"page_count":   doc.PageCount,
		"store_key":    doc.StoreKey,
		"ctime":        doc.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}

	if len(pages) > 0 {
		rows := make([]map[string]interface{}, 0, len(pages))
		for i, text := range pages {
			rows = append(rows, map[string]interface{}{
				"document_id": doc.ID,
				"page_num":    i + 1,
				"text":        text,
			})
		}
		sqlStr, args, err = builder.BuildInsert("document_pages", rows)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *DocumentRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Document, error) {
	const query = `
		SELECT id, session_id, name, content_type, size, page_count, store_key, ctime
		FROM documents WHERE session_id = $1 ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Document
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.SessionID, &doc.Name, &doc.ContentType, &doc.Size, &doc.PageCount, &doc.StoreKey, &doc.Ctime); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *DocumentRepo) GetByName(ctx context.Context, sessionID, name string) (*model.Document, error) {
	const query = `
		SELECT id, session_id, name, content_type, size, page_count, store_key, ctime
		FROM documents WHERE session_id = $1 AND name = $2
	`
	row := r.db.QueryRowContext(ctx, query, sessionID, name)
	var doc model.Document
	if err := row.Scan(&doc.ID, &doc.SessionID, &doc.Name, &doc.ContentType, &doc.Size, &doc.PageCount, &doc.StoreKey, &doc.Ctime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// ListPages returns a document's page texts in page order, including the
// empty ones.
func (r *DocumentRepo) ListPages(ctx context.Context, documentID string) ([]string, error) {
	const query = `SELECT text FROM document_pages WHERE document_id = $1 ORDER BY page_num ASC`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var pages []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		pages = append(pages, text)
	}
	return pages, rows.Err()
}

// ListStoreKeys returns the file store keys of every document in a
// session, for cleanup.
func (r *DocumentRepo) ListStoreKeys(ctx context.Context, sessionID string) ([]string, error) {
	const query = `SELECT store_key FROM documents WHERE session_id = $1`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
