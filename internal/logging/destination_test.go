package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestination_UnsetWritesToFallback(t *testing.T) {
	// Given: a destination with no path
	var fallback bytes.Buffer
	dest := NewDestination(&fallback)

	// When: writing a record
	_, err := dest.Write([]byte("record\n"))

	// Then: it reaches the fallback
	require.NoError(t, err)
	assert.Equal(t, "record\n", fallback.String())
	assert.Equal(t, "", dest.Path())
}

func TestDestination_SetPathAppendsToFile(t *testing.T) {
	// Given: an existing log file with content
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("before\n"), 0o644))

	var fallback bytes.Buffer
	dest := NewDestination(&fallback)
	defer func() { _ = dest.Close() }()

	// When: pointing the destination at it and writing
	dest.SetPath(path)
	_, err := dest.Write([]byte("after\n"))
	require.NoError(t, err)
	require.NoError(t, dest.Sync())

	// Then: the record is appended and nothing reaches the fallback
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "before\nafter\n", string(data))
	assert.Empty(t, fallback.String())
	assert.Equal(t, path, dest.Path())
}

func TestDestination_UnopenablePathFallsBack(t *testing.T) {
	// Given: a path under a directory that does not exist
	var fallback bytes.Buffer
	dest := NewDestination(&fallback)
	dest.SetPath(filepath.Join(t.TempDir(), "missing", "debug.log"))

	// When: writing
	_, err := dest.Write([]byte("lost?\n"))

	// Then: the record is not lost
	require.NoError(t, err)
	assert.Equal(t, "lost?\n", fallback.String())
}

func TestDestination_SwitchingPathsReopens(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.log")
	second := filepath.Join(dir, "b.log")

	dest := NewDestination(&bytes.Buffer{})
	defer func() { _ = dest.Close() }()

	dest.SetPath(first)
	_, _ = dest.Write([]byte("one\n"))
	dest.SetPath(second)
	_, _ = dest.Write([]byte("two\n"))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(a))
	assert.Equal(t, "two\n", string(b))
}

func TestDestination_CloseKeepsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	dest := NewDestination(&bytes.Buffer{})
	dest.SetPath(path)

	_, _ = dest.Write([]byte("one\n"))
	require.NoError(t, dest.Close())
	require.NoError(t, dest.Close(), "second close is a no-op")

	_, _ = dest.Write([]byte("two\n"))
	require.NoError(t, dest.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

// shortWriter accepts the first limit bytes of a write, then fails.
type shortWriter struct {
	bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) <= w.limit {
		return w.Buffer.Write(p)
	}
	n, _ := w.Buffer.Write(p[:w.limit])
	return n, io.ErrShortWrite
}

func (w *shortWriter) Close() error { return nil }

func TestDestination_ShortWriteSendsOnlyTail(t *testing.T) {
	// Given: a file that takes only the first 4 bytes of a record
	var fallback bytes.Buffer
	file := &shortWriter{limit: 4}
	dest := NewDestination(&fallback)
	dest.open = func(string) (io.WriteCloser, error) { return file, nil }
	dest.SetPath("/logs/debug.log")

	// When: writing a record
	n, err := dest.Write([]byte("partial record\n"))

	// Then: the rest lands in the fallback and nothing is duplicated
	require.NoError(t, err)
	assert.Equal(t, len("partial record\n"), n)
	assert.Equal(t, "part", file.String())
	assert.Equal(t, "ial record\n", fallback.String())
}

func TestDestination_ShortWriteReopensNextRecord(t *testing.T) {
	var fallback bytes.Buffer
	opens := 0
	dest := NewDestination(&fallback)
	dest.open = func(string) (io.WriteCloser, error) {
		opens++
		return &shortWriter{limit: 1}, nil
	}
	dest.SetPath("/logs/debug.log")

	_, _ = dest.Write([]byte("first\n"))
	_, _ = dest.Write([]byte("second\n"))

	assert.Equal(t, 2, opens)
}
