package utils

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Identity is the author and committer recorded on commits.
type Identity struct {
	Name  string
	Email string
}

// BotIdentity is the identity GitHub Actions uses for its own commits.
var BotIdentity = Identity{
	Name:  "github-actions[bot]",
	Email: "41898282+github-actions[bot]@users.noreply.github.com",
}

func (i Identity) env() []string {
	return []string{
		"GIT_AUTHOR_NAME=" + i.Name,
		"GIT_COMMITTER_NAME=" + i.Name,
		"GIT_AUTHOR_EMAIL=" + i.Email,
		"GIT_COMMITTER_EMAIL=" + i.Email,
	}
}

// Git runs the git CLI. Dir is the working directory, empty means the process
// working directory.
type Git struct {
	Dir string
	// Binary defaults to "git".
	Binary string
}

func (g *Git) run(ctx context.Context, env []string, args ...string) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	slog.Debug("Running git", "args", args, "dir", g.Dir)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = g.Dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w (output: %s)", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// Fetch fetches ref (a branch or a commit id) from remote.
func (g *Git) Fetch(ctx context.Context, remote, ref string) error {
	_, err := g.run(ctx, nil, "fetch", remote, ref)
	return err
}

// AddWorktree checks ref out into a new worktree at path.
func (g *Git) AddWorktree(ctx context.Context, path, ref string) error {
	_, err := g.run(ctx, nil, "worktree", "add", "--detach", path, ref)
	return err
}

// RemoveWorktree deletes the worktree at path, discarding any changes in it.
func (g *Git) RemoveWorktree(ctx context.Context, path string) error {
	_, err := g.run(ctx, nil, "worktree", "remove", "--force", path)
	return err
}

// CheckoutFile restores path from the index.
func (g *Git) CheckoutFile(ctx context.Context, path string) error {
	_, err := g.run(ctx, nil, "checkout", "--", path)
	return err
}

// Add stages paths, deletions included.
func (g *Git) Add(ctx context.Context, paths ...string) error {
	_, err := g.run(ctx, nil, append([]string{"add", "--all", "--"}, paths...)...)
	return err
}

// Commit records the staged changes as id.
func (g *Git) Commit(ctx context.Context, message string, id Identity) error {
	_, err := g.run(ctx, id.env(), "commit", "-m", message)
	return err
}

// Push pushes refspec, e.g. "HEAD:release/1.0.0", to remote.
func (g *Git) Push(ctx context.Context, remote, refspec string) error {
	_, err := g.run(ctx, nil, "push", remote, refspec)
	return err
}

// RevParse resolves ref to a commit id.
func (g *Git) RevParse(ctx context.Context, ref string) (string, error) {
	out, err := g.run(ctx, nil, "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
