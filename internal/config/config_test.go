package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/ticketline/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ticketline", "ticketline.db"), cfg.DBPath)
	assert.False(t, cfg.Log.UseCases)
	assert.Equal(t, scheduler.DefaultGeometry(), cfg.Geometry())
	assert.Equal(t, 6, cfg.Timeline.Weeks)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ticketline"), 0o755))
	writeConfig(t, filepath.Join(home, ".ticketline"), `
db_path: ~/boards/team.db
log:
  use_cases: true
  level: debug
timeline:
  day_width: 24
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "boards", "team.db"), cfg.DBPath)
	assert.True(t, cfg.Log.UseCases)
	assert.Equal(t, 24.0, cfg.Timeline.DayWidth)
	assert.Equal(t, float64(scheduler.DefaultRowHeight), cfg.Timeline.RowHeight, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), "timeline:\n  weeks: 4\n")
	t.Setenv("TICKETLINE_TIMELINE_WEEKS", "10")
	t.Setenv("TICKETLINE_DB_PATH", "/tmp/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Timeline.Weeks)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), `
log:
  level: chatty
timeline:
  row_height: 0
  weeks: 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeline.row_height")
	assert.Contains(t, err.Error(), "timeline.weeks")
	assert.Contains(t, err.Error(), "log.level")
}
