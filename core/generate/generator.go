// Package generate builds the changelog for a release pull request and
// removes the release notes it consumed.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/opensdd/osdd-release-notes/core"
	"github.com/opensdd/osdd-release-notes/core/actions"
	"github.com/opensdd/osdd-release-notes/core/changelog"
	"github.com/opensdd/osdd-release-notes/core/config"
	"github.com/opensdd/osdd-release-notes/core/notes"
	"github.com/opensdd/osdd-release-notes/core/utils"
)

// CommitMessage is used for the commit deleting consumed notes.
const CommitMessage = "Remove used release notes"

// PullRequestFinder resolves the pull request opened from a branch.
type PullRequestFinder interface {
	FindPullRequest(ctx context.Context, owner, repo, headRef string) (*utils.PullRequest, error)
}

// GitClient is the subset of git the generator drives.
type GitClient interface {
	Fetch(ctx context.Context, remote, ref string) error
	AddWorktree(ctx context.Context, path, ref string) error
	RemoveWorktree(ctx context.Context, path string) error
	CheckoutFile(ctx context.Context, path string) error
	Add(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string, id utils.Identity) error
	Push(ctx context.Context, remote, refspec string) error
}

// Generator runs the release note generation for one release branch.
type Generator struct {
	Config  *config.Generate
	PRs     PullRequestFinder
	Git     GitClient
	Actions *actions.Runner
	// RepoDir is the root of the checkout Git operates on. Empty means the
	// process working directory.
	RepoDir string
}

// Run executes every stage in order. The first failing stage aborts the run.
func (g *Generator) Run(ctx context.Context) error {
	cfg := g.Config
	owner, repo, err := config.SplitRepository(cfg.Repository)
	if err != nil {
		return err
	}

	pr, err := g.PRs.FindPullRequest(ctx, owner, repo, cfg.HeadRef)
	if err != nil {
		return fmt.Errorf("failed to find pull request: %w", err)
	}
	slog.Info("Found release pull request", "number", pr.Number, "headRef", pr.HeadRefName)

	if err := g.Actions.SetOutput("pr_number", pr.Number); err != nil {
		return err
	}

	version, err := VersionFromBranch(pr.HeadRefName)
	if err != nil {
		return err
	}

	worktree, removeWorktree, err := g.checkoutBase(ctx, pr.BaseOid)
	if err != nil {
		return err
	}
	defer removeWorktree()

	parsed, err := notes.ParseDir(ctx, filepath.Join(worktree, cfg.NotesDir))
	if err != nil {
		return fmt.Errorf("failed to parse release notes: %w", err)
	}

	groups := changelog.GroupNotes(parsed, cfg.CategoryRegistry(), changelog.PullRequestLinker(cfg.ServerURL, cfg.Repository))
	text := changelog.Render(version, groups)
	g.Actions.CollapsedLog("Release Notes", text)

	if err := g.Actions.SetOutput("comment", changelog.Comment(text)); err != nil {
		return err
	}

	return g.Cleanup(ctx)
}

// Cleanup deletes the note files left in the checkout, then commits and
// pushes the deletion to the head branch. It does nothing when no note
// files remain.
func (g *Generator) Cleanup(ctx context.Context) error {
	cfg := g.Config
	dir := filepath.Join(g.RepoDir, cfg.NotesDir)

	names, err := notes.ListNoteFiles(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		g.Actions.Println("No release notes found, no cleanup needed")
		return nil
	}

	err = g.Actions.Group("Remove used release notes", func() error {
		if err := core.RemoveNoteFiles(ctx, dir, names); err != nil {
			return err
		}
		return g.Git.CheckoutFile(ctx, filepath.Join(cfg.NotesDir, notes.ReadmeFile))
	})
	if err != nil {
		return fmt.Errorf("failed to remove used release notes: %w", err)
	}

	err = g.Actions.Group("Commit and push", func() error {
		if err := g.Git.Add(ctx, cfg.NotesDir); err != nil {
			return err
		}
		if err := g.Git.Commit(ctx, CommitMessage, utils.BotIdentity); err != nil {
			return err
		}
		return g.Git.Push(ctx, cfg.Remote, "HEAD:"+cfg.HeadRef)
	})
	if err != nil {
		return fmt.Errorf("failed to commit release note cleanup: %w", err)
	}
	slog.Info("Removed used release notes", "count", len(names))
	return nil
}

// checkoutBase materializes baseOid in an auxiliary worktree and returns its
// path with a function that removes it again.
func (g *Generator) checkoutBase(ctx context.Context, baseOid string) (string, func(), error) {
	path := g.Config.WorktreeDir
	var tmp string
	if path == "" {
		var err error
		tmp, err = os.MkdirTemp("", "release-notes-")
		if err != nil {
			return "", nil, fmt.Errorf("failed to create worktree directory: %w", err)
		}
		path = filepath.Join(tmp, "base")
	}

	removeTmp := func() {
		if tmp != "" {
			_ = os.RemoveAll(tmp)
		}
	}

	err := g.Actions.Group("Checkout base ref in worktree", func() error {
		if err := g.Git.Fetch(ctx, g.Config.Remote, baseOid); err != nil {
			return err
		}
		return g.Git.AddWorktree(ctx, path, baseOid)
	})
	if err != nil {
		removeTmp()
		return "", nil, fmt.Errorf("failed to check out base ref %s: %w", baseOid, err)
	}

	return path, func() {
		// The run's context may already be cancelled; removal must still happen.
		if err := g.Git.RemoveWorktree(context.WithoutCancel(ctx), path); err != nil {
			slog.Warn("Failed to remove worktree", "path", path, "error", err)
		}
		removeTmp()
	}, nil
}

// VersionFromBranch returns the second segment of a release branch name,
// e.g. "4.5.0" for "release/4.5.0".
func VersionFromBranch(branch string) (string, error) {
	parts := strings.Split(branch, "/")
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("cannot derive a version from branch %q: expected <prefix>/<version>", branch)
	}
	return parts[1], nil
}
