package conf

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	cfg, err := Parse(`
step_limit = 500
entry = "main"

[log]
level = "debug"

[globals]
name = "mx"
answer = 42
xs = [1, 2, 3]
`)
	require.NoError(t, err)
	assert.Equal(t, int64(500), cfg.StepLimit)
	assert.Equal(t, "main", cfg.Entry)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mx", cfg.Globals["name"])
	assert.Equal(t, int64(42), cfg.Globals["answer"])
	assert.Len(t, cfg.Globals["xs"], 3)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	_, err := Parse(`step_limit = -1`)
	assert.Error(t, err)
	_, err = Parse("[log]\nformat = \"xml\"")
	assert.Error(t, err)
	_, err = Parse(`step_limit = `)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	t.Run("missing optional", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(filepath.Join(t.TempDir(), CONFIGFILE), true)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), CONFIGFILE), false)
		assert.Error(t, err)
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), CONFIGFILE)
		require.NoError(t, os.WriteFile(path, []byte("step_limit = 10\n"), 0o600))
		cfg, err := Load(path, false)
		require.NoError(t, err)
		assert.Equal(t, int64(10), cfg.StepLimit)
		assert.Equal(t, "warn", cfg.Log.Level)
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	t.Run("stderr only", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger, closeFn, err := NewLogger(LogConfig{Level: "info"}, &buf)
		require.NoError(t, err)
		logger.Debug("hidden")
		logger.Info("shown", "pc", 3)
		require.NoError(t, closeFn())
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.Contains(t, buf.String(), "pc=3")
	})

	t.Run("fanout to file", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "mx.log")
		logger, closeFn, err := NewLogger(LogConfig{Level: "debug", File: path}, &buf)
		require.NoError(t, err)
		logger.Debug("frame pushed")
		require.NoError(t, closeFn())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"frame pushed"`)
		assert.Contains(t, buf.String(), "frame pushed")
	})

	t.Run("bad level", func(t *testing.T) {
		t.Parallel()
		_, _, err := NewLogger(LogConfig{Level: "loud"}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	level, err := ParseLevel("ERROR")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)
}
