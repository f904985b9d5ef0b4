package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/pkg/dbutil"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) Append(ctx context.Context, msg *model.Message) error {
	data := map[string]interface{}{
		"id":         msg.ID,
		"session_id": msg.SessionID,
		"role":       msg.Role,
		"mode":       msg.Mode,
		"content":    msg.Content,
		"ctime":      msg.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("messages", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *MessageRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	// ordering by seq, not ctime: a chat turn writes two messages within
	// the same unix second
	const query = `
		SELECT id, seq, session_id, role, mode, content, ctime
		FROM messages WHERE session_id = $1 ORDER BY seq ASC LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Message
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.Seq, &msg.SessionID, &msg.Role, &msg.Mode, &msg.Content, &msg.Ctime); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}
