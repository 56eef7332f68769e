package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
	"mergecheck.dev/mergecheck/internal/git"
	"mergecheck.dev/mergecheck/testhelpers"
)

func newSceneClient(scene *testhelpers.Scene, opts ...git.ClientOption) *git.Client {
	return git.NewClient(git.NewCommandRunner(scene.Dir), opts...)
}

func TestClientDefaults(t *testing.T) {
	c := git.NewClient(scripted(nil))
	require.Equal(t, "origin", c.Remote())
	require.Equal(t, "master", c.Trunk())

	c = git.NewClient(scripted(nil), git.WithRemote("upstream"), git.WithTrunk("main"), git.WithTrunk(""))
	require.Equal(t, "upstream", c.Remote())
	require.Equal(t, "main", c.Trunk())
}

func TestVersion(t *testing.T) {
	t.Run("returns trimmed version line", func(t *testing.T) {
		c := git.NewClient(scripted(map[string]git.Result{
			"--version": success("git version 2.21.0 (Apple Git-122)\n"),
		}))

		version, err := c.Version(context.Background())
		require.NoError(t, err)
		require.Equal(t, "git version 2.21.0 (Apple Git-122)", version)
	})

	t.Run("non-zero exit is a GitCommandError", func(t *testing.T) {
		c := git.NewClient(scripted(map[string]git.Result{
			"--version": failure(2, "boom"),
		}))

		_, err := c.Version(context.Background())
		var gitErr *mcerrors.GitCommandError
		require.True(t, errors.As(err, &gitErr))
		require.Equal(t, 2, gitErr.ExitCode)
		require.Equal(t, "boom", gitErr.Stderr)
	})

	t.Run("works against the installed git", func(t *testing.T) {
		version, err := git.NewClient(git.NewCommandRunner("")).Version(context.Background())
		require.NoError(t, err)
		_, err = git.ParseGitVersion(version)
		require.NoError(t, err)
	})
}

func TestListBranches(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.MergeSceneSetup)

	branches, err := newSceneClient(scene).ListBranches(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"main", "release", "feature"}, branches)
	testhelpers.ExpectBranches(t, scene.Repo, branches)
}

func TestGetMergeBase(t *testing.T) {
	t.Run("returns the common ancestor of related branches", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.MergeSceneSetup)
		base, err := scene.Repo.GetRevision("main~1")
		require.NoError(t, err)

		sha, err := newSceneClient(scene).GetMergeBase(context.Background(), "release", "main")
		require.NoError(t, err)
		require.Equal(t, base, sha)
		require.True(t, git.IsObjectID(sha))
	})

	t.Run("fails with ErrNoCommonAncestor for unrelated histories", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("initial", "init"); err != nil {
				return err
			}
			if err := s.Repo.CreateOrphanBranch("orphan"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("orphan", "orphan")
		})

		_, err := newSceneClient(scene).GetMergeBase(context.Background(), "orphan", "main")
		require.ErrorIs(t, err, mcerrors.ErrNoCommonAncestor)

		payload, ok := mcerrors.PayloadOf(err)
		require.True(t, ok)
		mp := payload.(git.MergePayload)
		require.Equal(t, "orphan", mp.Source)
		require.Equal(t, "main", mp.Target)
		require.Equal(t, 1, mp.Result.ExitCode)
	})

	t.Run("fails with ErrNoCommonAncestor for unknown branches", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		_, err := newSceneClient(scene).GetMergeBase(context.Background(), "nope", "main")
		require.ErrorIs(t, err, mcerrors.ErrNoCommonAncestor)
	})

	t.Run("treats empty output as no ancestor", func(t *testing.T) {
		c := git.NewClient(scripted(map[string]git.Result{
			"merge-base a b": success("\n"),
		}))

		_, err := c.GetMergeBase(context.Background(), "a", "b")
		require.ErrorIs(t, err, mcerrors.ErrNoCommonAncestor)
	})

	t.Run("passes spawn failures through", func(t *testing.T) {
		spawnErr := mcerrors.NewContextError(mcerrors.ErrSpawn, "failed to start git", nil)
		c := git.NewClient(&mockRunner{run: func(...string) (git.Result, error) {
			return git.Result{ExitCode: -1}, spawnErr
		}})

		_, err := c.GetMergeBase(context.Background(), "a", "b")
		require.ErrorIs(t, err, mcerrors.ErrSpawn)
		require.NotErrorIs(t, err, mcerrors.ErrNoCommonAncestor)
	})
}
