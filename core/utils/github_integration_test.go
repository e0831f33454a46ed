//go:build integration

package utils

import (
	"context"
	"strings"
	"testing"

	"github.com/opensdd/osdd-release-notes/core/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integEnvOrSkip(t *testing.T, keys ...string) map[string]string {
	t.Helper()
	if testing.Short() {
		t.Skip()
	}
	vals := make(map[string]string, len(keys))
	for _, k := range keys {
		v := testutil.IntegEnv(k)
		if v == "" {
			t.Skipf("%s required (env var or %s)", k, testutil.IntegEnvFile)
		}
		vals[k] = v
	}
	return vals
}

func TestFindPullRequest_Integration(t *testing.T) {
	env := integEnvOrSkip(t, "GITHUB_TOKEN", "RELEASE_NOTES_TEST_REPOSITORY", "RELEASE_NOTES_TEST_HEAD_REF")

	owner, repo, ok := strings.Cut(env["RELEASE_NOTES_TEST_REPOSITORY"], "/")
	require.True(t, ok, "RELEASE_NOTES_TEST_REPOSITORY must be owner/repo")

	c := &GitHubClient{Token: env["GITHUB_TOKEN"]}
	pr, err := c.FindPullRequest(context.Background(), owner, repo, env["RELEASE_NOTES_TEST_HEAD_REF"])
	require.NoError(t, err)
	assert.Positive(t, pr.Number)
	assert.NotEmpty(t, pr.BaseOid)
	assert.Equal(t, env["RELEASE_NOTES_TEST_HEAD_REF"], pr.HeadRefName)
}
