package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "")
	t.Setenv("VERCEL_PROJECT_ID", "")
	t.Setenv("AIRLIFT_VERCEL_BIN", "")
	t.Setenv("AIRLIFT_DB", "")
	t.Setenv("HOME", "/home/test")

	cfg := Load()
	require.Empty(t, cfg.Token)
	require.Empty(t, cfg.ProjectID)
	require.Equal(t, "vercel", cfg.VercelBin)
	require.Equal(t, filepath.Join("/home/test", ".airlift", "airlift.db"), cfg.HistoryDB)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "  tok-123  ")
	t.Setenv("VERCEL_PROJECT_ID", "prj_9")
	t.Setenv("AIRLIFT_VERCEL_BIN", "/usr/local/bin/vercel")
	t.Setenv("AIRLIFT_DB", "/var/lib/airlift/history.db")

	cfg := Load()
	require.Equal(t, "tok-123", cfg.Token)
	require.Equal(t, "prj_9", cfg.ProjectID)
	require.Equal(t, "/usr/local/bin/vercel", cfg.VercelBin)
	require.Equal(t, "/var/lib/airlift/history.db", cfg.HistoryDB)
}
