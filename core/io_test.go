package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
}

func TestRemoveNoteFiles(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "1.md", "2.md", "README.md")

		require.NoError(t, RemoveNoteFiles(context.Background(), dir, []string{"1.md", "2.md"}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "README.md", entries[0].Name())
	})

	t.Run("blank_names_skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFiles(t, dir, "7.md")

		require.NoError(t, RemoveNoteFiles(context.Background(), dir, []string{"", "  ", "7.md"}))

		_, err := os.Stat(filepath.Join(dir, "7.md"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("empty_list", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, RemoveNoteFiles(context.Background(), t.TempDir(), nil))
	})

	t.Run("empty_dir", func(t *testing.T) {
		err := RemoveNoteFiles(context.Background(), " ", []string{"1.md"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "notes directory cannot be empty")
	})

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()
		err := RemoveNoteFiles(context.Background(), t.TempDir(), []string{"404.md"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to remove")
	})

	t.Run("path_traversal_blocked", func(t *testing.T) {
		parent := t.TempDir()
		dir := filepath.Join(parent, "notes")
		require.NoError(t, os.Mkdir(dir, 0o755))
		writeFiles(t, parent, "outside.md")
		writeFiles(t, dir, "1.md")

		err := RemoveNoteFiles(context.Background(), dir, []string{"1.md", filepath.Join("..", "outside.md")})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "escapes notes directory")

		_, statErr := os.Stat(filepath.Join(parent, "outside.md"))
		assert.NoError(t, statErr, "file outside the notes directory was removed")
		_, statErr = os.Stat(filepath.Join(dir, "1.md"))
		assert.NoError(t, statErr, "nothing should be removed when a name is rejected")
	})

	t.Run("directory_itself_rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		err := RemoveNoteFiles(context.Background(), dir, []string{"."})
		assert.Error(t, err)
	})
}

func TestIsPathWithinRoot(t *testing.T) {
	t.Parallel()
	root := filepath.Join("a", "b")
	assert.True(t, isPathWithinRoot(root, filepath.Join(root, "c.md")))
	assert.True(t, isPathWithinRoot(root, root))
	assert.False(t, isPathWithinRoot(root, "a"))
	assert.False(t, isPathWithinRoot(root, filepath.Join("a", "bc", "d.md")))
}
