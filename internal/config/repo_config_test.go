package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mergecheck.dev/mergecheck/internal/git"
)

// newGitDir returns an empty directory standing in for a repository's .git
func newGitDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".git")
	require.NoError(t, os.Mkdir(dir, 0750))
	return dir
}

func stringPtr(s string) *string {
	return &s
}

func TestGetRepoConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when config does not exist", func(t *testing.T) {
		t.Parallel()
		gitDir := newGitDir(t)

		config, err := GetRepoConfig(gitDir)
		require.NoError(t, err)
		require.Equal(t, "master", config.TrunkName())
		require.Equal(t, "origin", config.RemoteName())
		require.Equal(t, "git", config.GitBinaryPath())
		require.Equal(t, 5*time.Minute, config.CommandTimeout())
		require.False(t, IsInitialized(gitDir))
	})

	t.Run("defaults match an unconfigured git client", func(t *testing.T) {
		t.Parallel()

		config, err := GetRepoConfig(newGitDir(t))
		require.NoError(t, err)
		client := git.NewClient(git.NewCommandRunner(""))
		require.Equal(t, client.Trunk(), config.TrunkName())
		require.Equal(t, client.Remote(), config.RemoteName())
	})

	t.Run("reads every field", func(t *testing.T) {
		t.Parallel()
		gitDir := newGitDir(t)
		timeout := 30
		require.NoError(t, Save(gitDir, &RepoConfig{
			Trunk:                 stringPtr("main"),
			Remote:                stringPtr("upstream"),
			GitBinary:             stringPtr("/usr/local/bin/git"),
			CommandTimeoutSeconds: &timeout,
		}))

		config, err := GetRepoConfig(gitDir)
		require.NoError(t, err)
		require.Equal(t, "main", config.TrunkName())
		require.Equal(t, "upstream", config.RemoteName())
		require.Equal(t, "/usr/local/bin/git", config.GitBinaryPath())
		require.Equal(t, 30*time.Second, config.CommandTimeout())
		require.True(t, IsInitialized(gitDir))
	})

	t.Run("empty and non-positive values fall back to defaults", func(t *testing.T) {
		t.Parallel()
		timeout := 0
		config := &RepoConfig{Trunk: stringPtr(""), Remote: stringPtr(""), CommandTimeoutSeconds: &timeout}

		require.Equal(t, "master", config.TrunkName())
		require.Equal(t, "origin", config.RemoteName())
		require.Equal(t, 5*time.Minute, config.CommandTimeout())
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		t.Parallel()
		gitDir := newGitDir(t)
		require.NoError(t, os.WriteFile(Path(gitDir), []byte("{not json"), 0600))

		_, err := GetRepoConfig(gitDir)
		require.ErrorContains(t, err, "failed to parse repo config")
	})
}

func TestSetters(t *testing.T) {
	t.Parallel()

	t.Run("SetTrunk and SetRemote keep other fields", func(t *testing.T) {
		t.Parallel()
		gitDir := newGitDir(t)

		require.NoError(t, SetTrunk(gitDir, "main"))
		require.NoError(t, SetRemote(gitDir, "upstream"))

		config, err := GetRepoConfig(gitDir)
		require.NoError(t, err)
		require.Equal(t, "main", config.TrunkName())
		require.Equal(t, "upstream", config.RemoteName())
	})

	t.Run("Save refuses a missing directory", func(t *testing.T) {
		t.Parallel()

		err := Save(filepath.Join(t.TempDir(), "missing"), &RepoConfig{})
		require.ErrorContains(t, err, "not a git directory")
	})

	t.Run("Save refuses a .git file", func(t *testing.T) {
		t.Parallel()
		dotGit := filepath.Join(t.TempDir(), ".git")
		require.NoError(t, os.WriteFile(dotGit, []byte("gitdir: /elsewhere\n"), 0600))

		err := Save(dotGit, &RepoConfig{})
		require.ErrorContains(t, err, "not a git directory")
	})
}
