// Package config reads the release-notes settings from the environment the
// GitHub Actions runner provides.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/opensdd/osdd-release-notes/core"
)

// Common holds settings shared by both commands.
type Common struct {
	NotesDir   string   `env:"RELEASE_NOTES_DIR"        envDefault:"upcoming-release-notes"`
	Categories []string `env:"RELEASE_NOTES_CATEGORIES" envDefault:"Features,Enhancements,Bugfix,Maintenance" envSeparator:","`
	Debug      bool     `env:"RELEASE_NOTES_DEBUG"`
}

// CategoryRegistry returns the configured categories.
func (c Common) CategoryRegistry() core.Categories {
	return core.NewCategories(c.Categories...)
}

// Check configures the `check` command.
type Check struct {
	Common
	PRNumber    string `env:"PR_NUMBER,required,notEmpty"`
	SummaryPath string `env:"GITHUB_STEP_SUMMARY"`
}

// Generate configures the `generate` command.
type Generate struct {
	Common
	Repository string `env:"GITHUB_REPOSITORY,required,notEmpty"`
	HeadRef    string `env:"GITHUB_HEAD_REF,required,notEmpty"`
	Token      string `env:"GITHUB_TOKEN,required,notEmpty"`
	OutputPath string `env:"GITHUB_OUTPUT"`
	GraphQLURL string `env:"GITHUB_GRAPHQL_URL" envDefault:"https://api.github.com/graphql"`
	ServerURL  string `env:"GITHUB_SERVER_URL"  envDefault:"https://github.com"`
	// WorktreeDir is where the base branch is checked out. A temporary
	// directory is used when empty.
	WorktreeDir string `env:"RELEASE_NOTES_WORKTREE"`
	Remote      string `env:"RELEASE_NOTES_REMOTE" envDefault:"origin"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadCheck reads the check configuration.
func LoadCheck() (*Check, error) {
	cfg := &Check{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.CategoryRegistry().Len() == 0 {
		return nil, fmt.Errorf("RELEASE_NOTES_CATEGORIES must name at least one category")
	}
	return cfg, nil
}

// LoadGenerate reads the generate configuration.
func LoadGenerate() (*Generate, error) {
	cfg := &Generate{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if _, _, err := SplitRepository(cfg.Repository); err != nil {
		return nil, err
	}
	if cfg.CategoryRegistry().Len() == 0 {
		return nil, fmt.Errorf("RELEASE_NOTES_CATEGORIES must name at least one category")
	}
	return cfg, nil
}

// Redacted returns a copy safe to print.
func (g Generate) Redacted() Generate {
	if g.Token != "" {
		g.Token = "--- REDACTED ---"
	}
	return g
}

// SplitRepository splits an "owner/repo" slug.
func SplitRepository(slug string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(slug), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", slug)
	}
	return owner, repo, nil
}
