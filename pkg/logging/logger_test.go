package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	require.NoError(t, Close())
	t.Cleanup(func() { _ = Close() })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"warn", LevelWarn},
		{"Error", LevelError},
		{"verbose", LevelWarn},
		{"", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInit_JSONWriter(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: LevelInfo, Format: "json", Writer: &buf}))

	Debug("hidden", "k", 1)
	Info("row appended", "rows", 3)
	WithTable("users").Warnw("table nearly full")
	require.NoError(t, GetLogger().Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "row appended", first["msg"])
	assert.Equal(t, float64(3), first["rows"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "users", second["table"])
	assert.Equal(t, "warn", second["level"])
}

func TestInit_Twice(t *testing.T) {
	resetLogger(t)

	require.NoError(t, Init(Config{Level: LevelWarn, Writer: &bytes.Buffer{}}))
	assert.Error(t, Init(Config{Level: LevelWarn, Writer: &bytes.Buffer{}}))
}

func TestInit_FileOutput(t *testing.T) {
	resetLogger(t)

	path := filepath.Join(t.TempDir(), "logs", "fensql.log")
	require.NoError(t, Init(Config{Level: LevelDebug, OutputPath: path, Format: "text"}))

	WithComponent("pager").Debugw("page allocated", "page", 0)
	WithError(errors.New("boom")).Errorw("insert failed")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page allocated")
	assert.Contains(t, string(data), "boom")
}

func TestGetLogger_LazyDefault(t *testing.T) {
	resetLogger(t)

	assert.NotNil(t, GetLogger())
	assert.NotNil(t, WithSession("abc"))
	assert.NotNil(t, WithPage(3))
}
