package notes

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/opensdd/osdd-release-notes/core"
	"golang.org/x/sync/errgroup"
)

// ReadmeFile is the help document kept next to the notes.
const ReadmeFile = "README.md"

var noteFilePattern = regexp.MustCompile(`^\d+\.md$`)

// IsNoteFile reports whether name is a pending note file name: digits followed by `.md`.
func IsNoteFile(name string) bool {
	return noteFilePattern.MatchString(name)
}

// NumberOf returns the pull request number encoded in a note file name.
func NumberOf(name string) string {
	return strings.TrimSuffix(filepath.Base(name), ".md")
}

// ListNoteFiles returns the note file names in dir ordered by pull request
// number. Directories and non-matching names, README.md included, are skipped.
func ListNoteFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list release notes in %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsNoteFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.SortFunc(names, compareNoteNames)
	return names, nil
}

func compareNoteNames(a, b string) int {
	na := strings.TrimLeft(NumberOf(a), "0")
	nb := strings.TrimLeft(NumberOf(b), "0")
	return cmp.Or(
		cmp.Compare(len(na), len(nb)),
		strings.Compare(na, nb),
		strings.Compare(a, b),
	)
}

// ParseDir reads every note file in dir concurrently. The result follows the
// ListNoteFiles order regardless of which read finishes first. The first
// read or parse error cancels the remaining reads and is returned.
func ParseDir(ctx context.Context, dir string) ([]core.ReleaseNote, error) {
	names, err := ListNoteFiles(dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("Parsing release notes", "dir", dir, "count", len(names))

	result := make([]core.ReleaseNote, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			note, err := ReadNote(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			result[i] = note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
