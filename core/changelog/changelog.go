// Package changelog groups release notes by category and renders the
// changelog text posted on the release pull request.
package changelog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/opensdd/osdd-release-notes/core"
)

// CommentMarker identifies the generated comment so it can be found and updated.
const CommentMarker = "<!-- auto-generated-release-notes -->"

// Group is one changelog section.
type Group struct {
	Category string
	Lines    []string
}

// Groups is ordered: registry categories first, then unrecognized ones in the
// order they were first seen.
type Groups []Group

// Lines returns the lines of category, or nil when there is no such group.
func (g Groups) Lines(category string) []string {
	for _, grp := range g {
		if grp.Category == category {
			return grp.Lines
		}
	}
	return nil
}

// LinkFunc builds the URL of the pull request a note belongs to.
type LinkFunc func(number string) string

// PullRequestLinker links to `<serverURL>/<repository>/pull/<number>`.
func PullRequestLinker(serverURL, repository string) LinkFunc {
	base := strings.TrimRight(serverURL, "/") + "/" + strings.Trim(repository, "/")
	return func(number string) string {
		return base + "/pull/" + number
	}
}

// GroupNotes renders every note into the group of its category. Each category
// of the registry gets a group even when empty. Notes with an unrecognized
// category are kept in groups of their own after a warning is logged.
func GroupNotes(notes []core.ReleaseNote, categories core.Categories, link LinkFunc) Groups {
	names := categories.Names()
	groups := make(Groups, 0, len(names))
	index := make(map[string]int, len(names))
	for _, n := range names {
		index[n] = len(groups)
		groups = append(groups, Group{Category: n})
	}

	for _, note := range notes {
		i, ok := index[note.Category]
		if !ok {
			slog.Warn(fmt.Sprintf("WARNING: Unrecognized category %q", note.Category), "note", note.Number)
			i = len(groups)
			index[note.Category] = i
			groups = append(groups, Group{Category: note.Category})
		}
		groups[i].Lines = append(groups[i].Lines, FormatLine(note, link))
	}
	return groups
}

// FormatLine renders one note as a markdown list item linking the pull
// request and crediting each author as a `[name]` reference.
func FormatLine(note core.ReleaseNote, link LinkFunc) string {
	authors := make([]string, len(note.Authors))
	for i, a := range note.Authors {
		authors[i] = "[" + a + "]"
	}
	return fmt.Sprintf("- [#%s](%s) %s — thanks %s",
		note.Number, link(note.Number), strings.TrimSpace(note.Body), JoinAuthors(authors))
}

// JoinAuthors joins names in prose: "A", "A & B", "A, B & C".
func JoinAuthors(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}

// Render produces the changelog: a version header followed by one section per
// group, empty groups included.
func Render(version string, groups Groups) string {
	sections := make([]string, len(groups))
	for i, g := range groups {
		sections[i] = "#### " + g.Category + "\n\n" + strings.Join(g.Lines, "\n")
	}
	return "Version: " + version + "\n\n" + strings.Join(sections, "\n\n")
}

// Comment wraps the rendered changelog into the pull request comment body.
func Comment(changelog string) string {
	return CommentMarker + "\nHere are the automatically generated release notes!\n\n~~~markdown\n" + changelog + "\n~~~"
}
