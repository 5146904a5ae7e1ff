package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, parseLevel(in))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("stderr only", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer := New(&buf, Options{Level: "warn"})
		defer closer.Close()

		logger.Info("hidden")
		logger.Warn("shown", "title", "Crito")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown")
		assert.Contains(t, out, "title=Crito")
	})

	t.Run("json console", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer := New(&buf, Options{Format: "json"})
		defer closer.Close()

		logger.Info("parsed", "units", 3)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "parsed", rec["msg"])
		assert.EqualValues(t, 3, rec["units"])
	})

	t.Run("file receives json records", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "dialogos.log")
		logger, closer := New(&buf, Options{Level: "debug", File: path})

		logger.With("title", "Phaedo").Debug("saved dialogue", "units", 2)
		require.NoError(t, closer.Close())

		assert.Contains(t, buf.String(), "saved dialogue")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 1)

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
		assert.Equal(t, "saved dialogue", rec["msg"])
		assert.Equal(t, "Phaedo", rec["title"])
		assert.Equal(t, "DEBUG", rec["level"])
	})
}
