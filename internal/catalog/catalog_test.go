package catalog

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "b.jpg", "a.png", "notes.txt", "c.WEBP")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755))

	cat, err := Scan(dir, []string{".jpg", ".png", ".webp"})
	require.NoError(t, err)

	// Sorted, extension match case-insensitive, directories ignored.
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "c.WEBP"),
	}, cat.Paths())
}

func TestScan_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := Scan(filepath.Join(t.TempDir(), "nope"), []string{".jpg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDirectory)
}

func TestScan_NoImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "notes.txt")

	_, err := Scan(dir, []string{".jpg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestShuffle_Deterministic(t *testing.T) {
	t.Parallel()

	paths := []string{"a", "b", "c", "d", "e", "f"}

	first := New(paths)
	first.Shuffle(rand.New(rand.NewSource(42)))
	second := New(paths)
	second.Shuffle(rand.New(rand.NewSource(42)))

	assert.Equal(t, first.Paths(), second.Paths())
	assert.ElementsMatch(t, paths, first.Paths())
}

func TestAt_Modulo(t *testing.T) {
	t.Parallel()

	cat := New([]string{"a", "b", "c"})

	tests := []struct {
		i    int
		path string
		pos  int
	}{
		{0, "a", 0},
		{2, "c", 2},
		{3, "a", 0},
		{5, "c", 2},
		{-1, "c", 2},
		{-4, "c", 2},
	}
	for _, tt := range tests {
		path, pos, ok := cat.At(tt.i)
		require.True(t, ok)
		assert.Equal(t, tt.path, path, "At(%d)", tt.i)
		assert.Equal(t, tt.pos, pos, "At(%d)", tt.i)
	}
}

func TestAt_Empty(t *testing.T) {
	t.Parallel()

	cat := New(nil)
	_, _, ok := cat.At(0)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	cat := New([]string{"a", "b", "c"})

	assert.True(t, cat.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, cat.Paths())
	assert.Equal(t, 2, cat.Len())

	// Removing by path is idempotent.
	assert.False(t, cat.Remove("b"))
	assert.Equal(t, 2, cat.Len())

	// Subsequent entries shift down.
	path, pos, ok := cat.At(1)
	require.True(t, ok)
	assert.Equal(t, "c", path)
	assert.Equal(t, 1, pos)
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	cat := New([]string{"a", "b", "c"})
	assert.Equal(t, 1, cat.IndexOf("b"))
	assert.Equal(t, -1, cat.IndexOf("z"))

	cat.Remove("a")
	assert.Equal(t, 0, cat.IndexOf("b"))
}
