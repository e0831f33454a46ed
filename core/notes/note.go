package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opensdd/osdd-release-notes/core"
)

// ToNote converts parsed metadata into a ReleaseNote. Unlike the checker it
// does not look at the category registry; it only requires the fields to exist.
func ToNote(number string, meta Metadata, body string) (core.ReleaseNote, error) {
	if !meta.Category.Present {
		return core.ReleaseNote{}, fmt.Errorf("release note %s is missing a category", number)
	}
	if !meta.Authors.Present {
		return core.ReleaseNote{}, fmt.Errorf("release note %s is missing authors", number)
	}
	if !meta.Authors.List {
		return core.ReleaseNote{}, fmt.Errorf("release note %s authors should be a list", number)
	}
	return core.ReleaseNote{
		Number:   number,
		Category: meta.Category.Value,
		Authors:  append([]string{}, meta.Authors.Values...),
		Body:     strings.TrimSpace(body),
	}, nil
}

// ReadNote reads and parses the note stored at path. The note number is taken
// from the file name.
func ReadNote(path string) (core.ReleaseNote, error) {
	name := filepath.Base(path)
	if !IsNoteFile(name) {
		return core.ReleaseNote{}, fmt.Errorf("not a release note file name: %s", name)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return core.ReleaseNote{}, fmt.Errorf("failed to read release note %s: %w", path, err)
	}
	meta, body, err := Parse(string(b))
	if err != nil {
		return core.ReleaseNote{}, fmt.Errorf("failed to parse release note %s: %w", path, err)
	}
	return ToNote(NumberOf(name), meta, body)
}
