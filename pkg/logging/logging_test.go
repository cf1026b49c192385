package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("debug", FormatJSON, &buf)
		require.NoError(t, err)

		l.Debug("fetched page", "items", 2)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "fetched page", rec["msg"])
		require.EqualValues(t, 2, rec["items"])
	})

	t.Run("text filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("warn", FormatText, &buf)
		require.NoError(t, err)

		l.Info("hidden")
		require.Zero(t, buf.Len())
		l.Warn("shown")
		require.Contains(t, buf.String(), "shown")
	})

	t.Run("bad inputs", func(t *testing.T) {
		_, err := New("loud", FormatText, &bytes.Buffer{})
		require.Error(t, err)
		_, err = New("info", "xml", &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)

	lvl, err = ParseLevel("ERROR")
	require.NoError(t, err)
	require.Equal(t, slog.LevelError, lvl)
}

func TestNoop(t *testing.T) {
	require.NotNil(t, OrNoop(nil))
	l := slog.Default()
	require.Same(t, l, OrNoop(l))
	NewNoop().Info("nothing")
}
