package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// RemoveNoteFiles deletes the given note files from dir.
// - dir: directory holding the pending notes.
// - names: file names relative to dir, as returned by a directory listing.
// Behavior:
// - Skips blank names.
// - Rejects names that escape dir via path traversal, before anything is removed.
// - Stops at the first file that cannot be removed; files removed before that stay removed.
func RemoveNoteFiles(_ context.Context, dir string, names []string) error {
	log := slog.With("op", "RemoveNoteFiles")
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("notes directory cannot be empty")
	}
	root := filepath.Clean(dir)

	paths := make([]string, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		full := filepath.Clean(filepath.Join(root, name))
		if full == root || !isPathWithinRoot(root, full) {
			return fmt.Errorf("entry %d: path escapes notes directory: %s", i, name)
		}
		paths = append(paths, full)
	}

	for _, p := range paths {
		log.Debug("Removing note file", "path", p)
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// isPathWithinRoot checks whether target is inside root directory.
func isPathWithinRoot(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}
