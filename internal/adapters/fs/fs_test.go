package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spell/internal/adapters/fs"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	base := time.Now()
	touch(t, filepath.Join(tmpDir, ".git", "config"), base)
	touch(t, filepath.Join(tmpDir, "ignored", "file"), base)
	touch(t, filepath.Join(tmpDir, "src", "main.c"), base)
	touch(t, filepath.Join(tmpDir, "README.md"), base)

	var got []string
	for path := range fs.NewWalker().WalkFiles(tmpDir, []string{"ignored"}) {
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		got = append(got, rel)
	}
	slices.Sort(got)

	assert.Equal(t, []string{"README.md", filepath.Join("src", "main.c")}, got)
}

func TestStater_ModTime(t *testing.T) {
	tmpDir := t.TempDir()
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	file := filepath.Join(tmpDir, "a.c")
	touch(t, file, mtime)

	stater := fs.NewStater(fs.NewWalker())

	got, exists, err := stater.ModTime(file)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, got.Equal(mtime))

	_, exists, err = stater.ModTime(filepath.Join(tmpDir, "missing.c"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStater_ModTimeDirectoryUsesNewestFile(t *testing.T) {
	tmpDir := t.TempDir()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := old.Add(time.Hour)

	dir := filepath.Join(tmpDir, "src")
	touch(t, filepath.Join(dir, "a.c"), old)
	touch(t, filepath.Join(dir, "nested", "b.c"), newer)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "nested"), old, old))
	require.NoError(t, os.Chtimes(dir, old, old))

	got, exists, err := fs.NewStater(fs.NewWalker()).ModTime(dir)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, got.Equal(newer), "got %v, want %v", got, newer)
}
