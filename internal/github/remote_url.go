// Package github resolves branch heads through the GitHub REST API.
package github

import (
	"fmt"
	"strings"

	"mergecheck.dev/mergecheck/internal/git"
)

// RepoInfo identifies a repository on a GitHub host
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseGitHubRemoteURL extracts hostname, owner and repo from a remote URL.
// Enterprise hosts are accepted as well as github.com:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, "/")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	var hostname, path string
	switch {
	case strings.HasPrefix(remoteURL, "https://"), strings.HasPrefix(remoteURL, "http://"), strings.HasPrefix(remoteURL, "ssh://"):
		rest := remoteURL[strings.Index(remoteURL, "://")+3:]
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		var ok bool
		hostname, path, ok = strings.Cut(rest, "/")
		if !ok {
			return nil, fmt.Errorf("invalid remote URL %q: missing path", remoteURL)
		}
		// Drop an explicit port
		hostname, _, _ = strings.Cut(hostname, ":")
	case strings.Contains(remoteURL, "@"):
		_, hostAndPath, _ := strings.Cut(remoteURL, "@")
		var ok bool
		hostname, path, ok = strings.Cut(hostAndPath, ":")
		if !ok {
			hostname, path, ok = strings.Cut(hostAndPath, "/")
			if !ok {
				return nil, fmt.Errorf("invalid SSH remote URL %q: missing path", remoteURL)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported remote URL %q", remoteURL)
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid remote URL %q: path must be owner/repo", remoteURL)
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]

	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL %q", remoteURL)
	}

	return &RepoInfo{Hostname: hostname, Owner: owner, Repo: repo}, nil
}

// RepoInfoForRemote reads the URL of a configured remote and parses it
func RepoInfoForRemote(dir, remote string) (*RepoInfo, error) {
	remoteURL, err := git.RemoteURL(dir, remote)
	if err != nil {
		return nil, err
	}
	return ParseGitHubRemoteURL(remoteURL)
}
