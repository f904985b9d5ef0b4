package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"port": 8080,
		"database": {"host": "localhost"},
		"file_store": {"type": "local", "data": {"dir": "/tmp"}}
	}`))
	require.NoError(t, err)
	require.Equal(t, 25, cfg.Upload.MaxSizeMB)
	require.Equal(t, 1000, cfg.Upload.RateWindowMS)
	require.Equal(t, 72, cfg.Session.TTLHours)
	require.Equal(t, "0 * * * *", cfg.Session.CleanupCron)
}

func TestLoadRateWindowDisabled(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{
		"port": 8080,
		"database": {"host": "localhost"},
		"file_store": {"type": "local", "data": {"dir": "/tmp"}},
		"upload": {"rate_window_ms": -1}
	}`))
	require.NoError(t, err)
	require.Zero(t, cfg.Upload.RateWindowMS)
}

func TestLoadRejectsBadStrategy(t *testing.T) {
	_, err := Load(writeConfig(t, `{
		"port": 8080,
		"database": {"host": "localhost"},
		"file_store": {"type": "local", "data": {"dir": "/tmp"}},
		"retrieval": {"scoring_strategy": "bm25"}
	}`))
	require.Error(t, err)
}
