package linestore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todo/internal/model"
)

func writeTodo(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".todo")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func openTodo(t *testing.T, path string, opts ...Option) *File {
	t.Helper()
	f, err := OpenOrCreate(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestOpenOrCreateCreatesMissingFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".todo")
	f := openTodo(t, p)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	records, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenOrCreateDoesNotTruncate(t *testing.T) {
	p := writeTodo(t, "DONE NORMAL a\n")
	f := openTodo(t, p)

	records, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{Done: true, Text: "a"}}, records)
}

func TestOpenOrCreateMissingDir(t *testing.T) {
	_, err := OpenOrCreate(filepath.Join(t.TempDir(), "nope", "deeper", ".todo"))
	assert.ErrorIs(t, err, ErrIO)
}

func TestLoad(t *testing.T) {
	t.Run("newline terminated", func(t *testing.T) {
		f := openTodo(t, writeTodo(t, "DONE NORMAL a\nNOT_DONE URGENT b\n"))
		records, err := f.Load()
		require.NoError(t, err)
		assert.Equal(t, []model.Record{{Done: true, Text: "a"}, {Urgent: true, Text: "b"}}, records)
	})

	t.Run("final line without newline", func(t *testing.T) {
		f := openTodo(t, writeTodo(t, "DONE NORMAL a\nNOT_DONE NORMAL tail"))
		records, err := f.Load()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "tail", records[1].Text)
	})

	t.Run("crlf", func(t *testing.T) {
		f := openTodo(t, writeTodo(t, "NOT_DONE NORMAL a\r\n"))
		records, err := f.Load()
		require.NoError(t, err)
		assert.Equal(t, []model.Record{{Text: "a"}}, records)
	})

	t.Run("blank line is malformed", func(t *testing.T) {
		f := openTodo(t, writeTodo(t, "DONE NORMAL a\n\nNOT_DONE NORMAL b\n"))
		_, err := f.Load()
		assert.ErrorIs(t, err, ErrMalformedRecord)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("load twice reads from start", func(t *testing.T) {
		f := openTodo(t, writeTodo(t, "DONE NORMAL a\n"))
		_, err := f.Load()
		require.NoError(t, err)
		records, err := f.Load()
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestLoadSkipMalformed(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	f := openTodo(t, writeTodo(t, "DONE NORMAL a\ngarbage\nNOT_DONE NORMAL b\n"),
		WithSkipMalformed(true), WithLogger(logger))

	records, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{Done: true, Text: "a"}, {Text: "b"}}, records)
	assert.Contains(t, logs.String(), "skipping malformed line")
}

func TestReplaceAll(t *testing.T) {
	for _, mode := range []WriteMode{WriteTruncate, WriteAtomic} {
		p := writeTodo(t, "DONE NORMAL a long line that is longer than the replacement\nNOT_DONE URGENT b\n")
		f := openTodo(t, p, WithWriteMode(mode))

		require.NoError(t, f.ReplaceAll([]model.Record{{Text: "x"}}))
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "NOT_DONE NORMAL x\n", string(data))

		// handle stays usable after a rewrite
		records, err := f.Load()
		require.NoError(t, err)
		assert.Equal(t, []model.Record{{Text: "x"}}, records)

		require.NoError(t, f.ReplaceAll(nil))
		data, err = os.ReadFile(p)
		require.NoError(t, err)
		assert.Empty(t, data)
	}
}

func TestParseWriteMode(t *testing.T) {
	m, err := ParseWriteMode("")
	require.NoError(t, err)
	assert.Equal(t, WriteTruncate, m)
	m, err = ParseWriteMode("atomic")
	require.NoError(t, err)
	assert.Equal(t, WriteAtomic, m)
	_, err = ParseWriteMode("wal")
	assert.Error(t, err)
}
