package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
	"mergecheck.dev/mergecheck/internal/git"
)

// maxBranchRedirects follows a renamed branch at most this many times
const maxBranchRedirects = 2

// BranchPayload is attached to API failures
type BranchPayload struct {
	Owner      string
	Repo       string
	Branch     string
	StatusCode int
}

// Client reads branch state for a single repository
type Client struct {
	api   *github.Client
	owner string
	repo  string
}

// NewClient creates a client for the repository described by info.
// Hosts other than github.com are treated as GitHub Enterprise.
func NewClient(ctx context.Context, info *RepoInfo, token string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)

	if info.Hostname == "github.com" {
		return newClient(httpClient, "", info)
	}
	// REST API: https://hostname/api/v3/
	return newClient(httpClient, fmt.Sprintf("https://%s/api/v3/", info.Hostname), info)
}

func newClient(httpClient *http.Client, baseURL string, info *RepoInfo) (*Client, error) {
	api := github.NewClient(httpClient)
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", info.Hostname, err)
		}
		api.BaseURL = parsed
		api.UploadURL = parsed
	}
	return &Client{api: api, owner: info.Owner, repo: info.Repo}, nil
}

// BranchHead returns the commit the named branch points at on GitHub
func (c *Client) BranchHead(ctx context.Context, branchName string) (string, error) {
	payload := BranchPayload{Owner: c.owner, Repo: c.repo, Branch: branchName}

	branch, resp, err := c.api.Repositories.GetBranch(ctx, c.owner, c.repo, branchName, maxBranchRedirects)
	if resp != nil {
		payload.StatusCode = resp.StatusCode
	}
	if err != nil {
		return "", mcerrors.NewContextError(
			mcerrors.ErrRemoteQuery,
			fmt.Sprintf("failed to read %s/%s@%s from GitHub", c.owner, c.repo, branchName),
			payload,
		).WithCause(err)
	}

	sha := branch.GetCommit().GetSHA()
	if !git.IsObjectID(sha) {
		return "", mcerrors.NewContextError(
			mcerrors.ErrRemoteQuery,
			fmt.Sprintf("GitHub returned no commit for %s/%s@%s", c.owner, c.repo, branchName),
			payload,
		)
	}
	return sha, nil
}

// Token returns a GitHub token from the environment or the gh CLI
func Token(ctx context.Context, hostname string) (string, error) {
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := os.Getenv(key); token != "" {
			return token, nil
		}
	}

	args := []string{"auth", "token"}
	if hostname != "" && hostname != "github.com" {
		args = append(args, "--hostname", hostname)
	}
	result, err := git.NewCommandRunner("", git.WithBinary("gh")).Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}
	if !result.Success() {
		return "", fmt.Errorf("failed to get GitHub token: gh exited %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	token := strings.TrimSpace(result.Stdout)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}
	return token, nil
}
