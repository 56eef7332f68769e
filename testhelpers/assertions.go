package testhelpers

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoState is a snapshot of everything a read-only git operation must leave alone.
type RepoState struct {
	Head   string
	Refs   string
	Status string
}

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// CaptureState records HEAD, every ref and the porcelain status of repo.
func CaptureState(t *testing.T, repo *GitRepo) RepoState {
	t.Helper()

	head, err := repo.RunGitCommandAndGetOutput("symbolic-ref", "HEAD")
	require.NoError(t, err, "Failed to read HEAD")
	refs, err := repo.RunGitCommandAndGetOutput("for-each-ref", "--format=%(refname) %(objectname)")
	require.NoError(t, err, "Failed to list refs")
	status, err := repo.Status()
	require.NoError(t, err, "Failed to read status")

	return RepoState{Head: head, Refs: refs, Status: status}
}

// ExpectUnchanged asserts that repo still matches a state captured earlier.
func ExpectUnchanged(t *testing.T, repo *GitRepo, before RepoState) {
	t.Helper()
	require.Equal(t, before, CaptureState(t, repo), "Repository was modified")
}

// ExpectBranches asserts that the repository has exactly the expected local branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	output, err := repo.RunGitCommandAndGetOutput("for-each-ref", "refs/heads/", "--format=%(refname:short)")
	require.NoError(t, err, "Failed to list branches")

	branches := []string{}
	for _, b := range strings.Split(output, "\n") {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}

	sort.Strings(branches)
	expected = append([]string{}, expected...)
	sort.Strings(expected)

	require.Equal(t, expected, branches, "Branches do not match")
}
