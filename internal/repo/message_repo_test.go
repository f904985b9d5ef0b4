package repo

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/docchat/internal/config"
	"github.com/xxxsen/docchat/internal/model"
	"github.com/xxxsen/docchat/internal/pkg/timeutil"
)

func openTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "docchat",
		Password: "docchat_pass",
		DBName:   "docchat_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}

func TestMessageRepoTurnOrdering(t *testing.T) {
	db, cleanup := openTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sessions := NewSessionRepo(db)
	messages := NewMessageRepo(db)

	now := timeutil.NowUnix()
	ses := &model.Session{ID: "ses-msg-order", Ctime: now, Atime: now}
	require.NoError(t, sessions.Create(ctx, ses))
	defer func() {
		require.NoError(t, sessions.Delete(ctx, ses.ID))
	}()

	// both messages of a turn share one ctime; insertion order must still
	// come back user first
	for turn := 0; turn < 3; turn++ {
		require.NoError(t, messages.Append(ctx, &model.Message{
			ID: newTestID("user", turn), SessionID: ses.ID,
			Role: model.RoleUser, Content: "pregunta", Ctime: now,
		}))
		require.NoError(t, messages.Append(ctx, &model.Message{
			ID: newTestID("assistant", turn), SessionID: ses.ID,
			Role: model.RoleAssistant, Mode: model.ModeChat, Content: "respuesta", Ctime: now,
		}))
	}

	list, err := messages.ListBySession(ctx, ses.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 6)
	for i, msg := range list {
		want := model.RoleUser
		if i%2 == 1 {
			want = model.RoleAssistant
		}
		require.Equal(t, want, msg.Role, "position %d", i)
		if i > 0 {
			require.Greater(t, msg.Seq, list[i-1].Seq)
		}
	}
}

func newTestID(role string, turn int) string {
	return "msg-" + role + "-" + string(rune('a'+turn))
}
