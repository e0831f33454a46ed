package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// DefaultGraphQLURL is the public GitHub GraphQL endpoint.
const DefaultGraphQLURL = "https://api.github.com/graphql"

// ErrPullRequestNotFound is returned when no pull request has the requested head branch.
var ErrPullRequestNotFound = errors.New("pull request not found")

const pullRequestQuery = `query GetPRMetadata($name: String!, $owner: String!, $headRefName: String!) {
  repository(name: $name, owner: $owner) {
    pullRequests(headRefName: $headRefName, first: 1) {
      edges {
        node {
          number
          baseRef {
            target {
              oid
            }
          }
          headRefName
        }
      }
    }
  }
}`

// PullRequest is the metadata the generator needs about the release pull request.
type PullRequest struct {
	Number int
	// BaseOid is the commit the base branch currently points at.
	BaseOid     string
	HeadRefName string
}

type githubGraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type githubGraphQLResponse struct {
	Data   *githubData    `json:"data"`
	Errors []githubGQLErr `json:"errors"`
}

type githubData struct {
	Repository *githubRepository `json:"repository"`
}

type githubRepository struct {
	PullRequests githubPullRequests `json:"pullRequests"`
}

type githubPullRequests struct {
	Edges []githubPullRequestEdge `json:"edges"`
}

type githubPullRequestEdge struct {
	Node githubPullRequest `json:"node"`
}

type githubPullRequest struct {
	Number  int `json:"number"`
	BaseRef *struct {
		Target struct {
			Oid string `json:"oid"`
		} `json:"target"`
	} `json:"baseRef"`
	HeadRefName string `json:"headRefName"`
}

type githubGQLErr struct {
	Message string `json:"message"`
}

// GitHubClient queries the GitHub GraphQL API.
type GitHubClient struct {
	// URL defaults to DefaultGraphQLURL.
	URL   string
	Token string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// OnResponse, when set, receives the decoded API response body.
	OnResponse func(raw json.RawMessage)
}

// FindPullRequest returns the first pull request of owner/repo whose head
// branch is headRef.
func (c *GitHubClient) FindPullRequest(ctx context.Context, owner, repo, headRef string) (*PullRequest, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("repository owner and name cannot be empty")
	}
	if headRef == "" {
		return nil, fmt.Errorf("head branch cannot be empty")
	}
	if c.Token == "" {
		return nil, fmt.Errorf("github API requires authentication: set GITHUB_TOKEN")
	}

	url := c.URL
	if url == "" {
		url = DefaultGraphQLURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	slog.Debug("Fetching pull request metadata", "owner", owner, "repo", repo, "headRef", headRef)

	body, err := json.Marshal(githubGraphQLRequest{
		Query: pullRequestQuery,
		Variables: map[string]any{
			"name":        repo,
			"owner":       owner,
			"headRefName": headRef,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal github request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create github request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "bearer "+c.Token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from github: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read github response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if c.OnResponse != nil {
		c.OnResponse(json.RawMessage(respBody))
	}

	var gqlResp githubGraphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to parse github response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("github API returned errors: %s", strings.Join(msgs, "; "))
	}
	if gqlResp.Data == nil || gqlResp.Data.Repository == nil {
		return nil, fmt.Errorf("github API response has no repository data for %s/%s", owner, repo)
	}

	edges := gqlResp.Data.Repository.PullRequests.Edges
	if len(edges) == 0 {
		return nil, fmt.Errorf("%w for branch %s", ErrPullRequestNotFound, headRef)
	}
	node := edges[0].Node
	if node.BaseRef == nil || node.BaseRef.Target.Oid == "" {
		return nil, fmt.Errorf("pull request #%d has no base branch commit", node.Number)
	}

	slog.Debug("Pull request found", "number", node.Number, "baseOid", node.BaseRef.Target.Oid)
	return &PullRequest{
		Number:      node.Number,
		BaseOid:     node.BaseRef.Target.Oid,
		HeadRefName: node.HeadRefName,
	}, nil
}
