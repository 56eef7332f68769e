package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// openRepo opens the repository containing dir, walking up to find .git
func openRepo(dir string) (*gogit.Repository, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return repo, nil
}

// RepoRoot returns the root directory of the Git repository containing dir.
// An empty dir means the current working directory.
func RepoRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	// Get the worktree to find the root
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// RemoteURL returns the first URL configured for the named remote
func RemoteURL(dir, remoteName string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to find remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remoteName)
	}
	return urls[0], nil
}

// GitCommonDir returns the absolute path of the git directory shared by every
// worktree of the repository. For a linked worktree or a submodule this is not
// <root>/.git.
func (c *Client) GitCommonDir(ctx context.Context) (string, error) {
	result, err := c.runChecked(ctx, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", err
	}
	dir := firstLine(result.Stdout)
	if dir == "" {
		return "", fmt.Errorf("git rev-parse --git-common-dir printed nothing")
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}

	// Relative output is relative to the directory git ran in
	if wd, ok := c.runner.(interface{ WorkingDir() string }); ok && wd.WorkingDir() != "" {
		dir = filepath.Join(wd.WorkingDir(), dir)
	}
	return filepath.Abs(dir)
}
