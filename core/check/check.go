// Package check validates the release note file that belongs to one pull request.
package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/opensdd/osdd-release-notes/core"
	"github.com/opensdd/osdd-release-notes/core/notes"
)

// ErrInvalidPRNumber is returned when the pull request number cannot name a note file.
var ErrInvalidPRNumber = errors.New("invalid pull request number")

// Input is what the rules look at.
type Input struct {
	Path   string
	Exists bool
	Meta   notes.Metadata
	Body   string
	// ParseErr is set when the file exists but its front matter cannot be read.
	ParseErr error
}

// Rule is one named check. Check returns an empty string when the input
// passes, otherwise the message shown to the author.
type Rule struct {
	Name  string
	Check func(in *Input) string
}

// Failure is the first rule that did not pass.
type Failure struct {
	Rule    string
	Message string
}

// Result of checking one note file. Failure is nil when every rule passed.
type Result struct {
	Path    string
	Failure *Failure
}

func (r *Result) OK() bool {
	return r != nil && r.Failure == nil
}

// DefaultRules returns the rules in evaluation order.
func DefaultRules(categories core.Categories) []Rule {
	return []Rule{
		{Name: "exists", Check: func(in *Input) string {
			if !in.Exists {
				return fmt.Sprintf("Release note file %s not found", in.Path)
			}
			return ""
		}},
		{Name: "front-matter", Check: func(in *Input) string {
			if in.ParseErr != nil {
				return fmt.Sprintf("Release note file %s has invalid front matter: %v", in.Path, in.ParseErr)
			}
			return ""
		}},
		{Name: "category-present", Check: func(in *Input) string {
			if !in.Meta.Category.Present {
				return "Release note is missing a category."
			}
			return ""
		}},
		{Name: "category-valid", Check: func(in *Input) string {
			c := in.Meta.Category
			if !c.Scalar || !categories.IsValid(c.Value) {
				return fmt.Sprintf("Release note category %q is not one of %s", c.Value, categories.Quoted())
			}
			return ""
		}},
		{Name: "authors-present", Check: func(in *Input) string {
			if !in.Meta.Authors.Present {
				return "Release note is missing authors."
			}
			return ""
		}},
		{Name: "authors-list", Check: func(in *Input) string {
			if !in.Meta.Authors.List {
				return "Release note authors should be a list."
			}
			return ""
		}},
		{Name: "single-line-body", Check: func(in *Input) string {
			body := strings.TrimSpace(in.Body)
			if body == "" || strings.Contains(body, "\n") {
				return fmt.Sprintf("Release note file %s body should contain exactly one line", in.Path)
			}
			return ""
		}},
	}
}

// Evaluate runs rules in order and returns the first failure, or nil.
func Evaluate(rules []Rule, in *Input) *Failure {
	for _, r := range rules {
		if msg := r.Check(in); msg != "" {
			return &Failure{Rule: r.Name, Message: msg}
		}
	}
	return nil
}

// ExpectedPath returns `<dir>/<prNumber>.md`.
func ExpectedPath(dir, prNumber string) (string, error) {
	prNumber = strings.TrimSpace(prNumber)
	if !notes.IsNoteFile(prNumber + ".md") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPRNumber, prNumber)
	}
	return filepath.Join(dir, prNumber+".md"), nil
}

// Checker validates the note file of a single pull request.
type Checker struct {
	Dir        string
	Categories core.Categories
	// Rules defaults to DefaultRules(Categories) when empty.
	Rules []Rule
}

// Run checks `<Dir>/<prNumber>.md`. Validation problems are reported through
// Result.Failure; the returned error is reserved for problems reading the file.
func (c *Checker) Run(_ context.Context, prNumber string) (*Result, error) {
	path, err := ExpectedPath(c.Dir, prNumber)
	if err != nil {
		return nil, err
	}
	log := slog.With("op", "Checker.Run", "path", path)

	in := &Input{Path: path}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("Release note file not found")
	case err != nil:
		return nil, fmt.Errorf("failed to read release note %s: %w", path, err)
	default:
		in.Exists = true
		in.Meta, in.Body, in.ParseErr = notes.Parse(string(b))
	}

	rules := c.Rules
	if len(rules) == 0 {
		rules = DefaultRules(c.Categories)
	}
	res := &Result{Path: path, Failure: Evaluate(rules, in)}
	if res.Failure != nil {
		log.Debug("Release note check failed", "rule", res.Failure.Rule)
	}
	return res, nil
}
