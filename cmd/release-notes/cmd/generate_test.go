package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensdd/osdd-release-notes/core/actions"
	"github.com/opensdd/osdd-release-notes/core/config"
)

func TestRunGenerate_PullRequestNotFound(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"repository":{"pullRequests":{"edges":[]}}}}`))
	}))
	defer server.Close()

	cfg := &config.Generate{
		Common:     config.Common{NotesDir: t.TempDir(), Categories: []string{"Features"}},
		Repository: "actualbudget/actual",
		HeadRef:    "release/24.5.0",
		Token:      "super-secret-token",
		GraphQLURL: server.URL,
		ServerURL:  "https://github.com",
		Remote:     "origin",
	}
	out := &bytes.Buffer{}

	err := runGenerate(context.Background(), cfg, &actions.Runner{Out: out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to generate release notes for release/24.5.0")
	assert.Contains(t, err.Error(), "pull request not found")

	assert.Contains(t, out.String(), "::group::Environment\n")
	assert.Contains(t, out.String(), "--- REDACTED ---")
	assert.NotContains(t, out.String(), "super-secret-token")
	assert.Contains(t, out.String(), "::group::API Response\n{\n")
}
