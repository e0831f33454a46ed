package utils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityEnv(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{
		"GIT_AUTHOR_NAME=github-actions[bot]",
		"GIT_COMMITTER_NAME=github-actions[bot]",
		"GIT_AUTHOR_EMAIL=41898282+github-actions[bot]@users.noreply.github.com",
		"GIT_COMMITTER_EMAIL=41898282+github-actions[bot]@users.noreply.github.com",
	}, BotIdentity.env())
}

func TestGit_MissingBinary(t *testing.T) {
	t.Parallel()
	g := &Git{Dir: t.TempDir(), Binary: filepath.Join(t.TempDir(), "no-such-git")}

	err := g.Fetch(context.Background(), "origin", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git fetch origin abc123 failed")
}

func TestGit_NotARepository(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()
	g := &Git{Dir: t.TempDir()}

	_, err := g.RevParse(context.Background(), "HEAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git rev-parse HEAD failed")
	assert.Contains(t, err.Error(), "(output:")
}
