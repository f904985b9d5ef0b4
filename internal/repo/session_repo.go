package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/pkg/dbutil"
	appErr "github.com/xxxsen/docchat/internal/pkg/errors"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, ses *model.Session) error {
	data := map[string]interface{}{
		"id":    ses.ID,
		"ctime": ses.Ctime,
		"atime": ses.Atime,
	}
	sqlStr, args, err := builder.BuildInsert("sessions", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	const query = `SELECT id, ctime, atime FROM sessions WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	var ses model.Session
	if err := row.Scan(&ses.ID, &ses.Ctime, &ses.Atime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &ses, nil
}

func (r *SessionRepo) Touch(ctx context.Context, id string, atime int64) error {
	const query = `UPDATE sessions SET atime = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, atime, id)
	return err
}

// ListIdleBefore returns sessions whose last activity predates the cutoff.
func (r *SessionRepo) ListIdleBefore(ctx context.Context, cutoff int64, limit int) ([]model.Session, error) {
	const query = `SELECT id, ctime, atime FROM sessions WHERE atime < $1 ORDER BY atime ASC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Session
	for rows.Next() {
		var ses model.Session
		if err := rows.Scan(&ses.ID, &ses.Ctime, &ses.Atime); err != nil {
			return nil, err
		}
		out = append(out, ses)
	}
	return out, rows.Err()
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
