package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
	"mergecheck.dev/mergecheck/internal/git"
	"mergecheck.dev/mergecheck/testhelpers"
)

const testSHA = "0123456789abcdef0123456789abcdef01234567"

func TestGetLatestCommitOnTrunk(t *testing.T) {
	t.Run("returns the pushed head of the trunk", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))

		head, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)

		sha, err := newSceneClient(scene, git.WithTrunk("main")).GetLatestCommitOnTrunk(context.Background())
		require.NoError(t, err)
		require.Equal(t, head, sha)
	})

	t.Run("does not match a longer branch sharing the prefix", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("release/main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("release", "rel"))
		require.NoError(t, scene.Repo.PushBranch("origin", "release/main"))

		_, err = newSceneClient(scene, git.WithTrunk("main")).GetLatestCommitOnTrunk(context.Background())
		require.ErrorIs(t, err, mcerrors.ErrRemoteQuery)
	})

	t.Run("fails with ErrRemoteQuery when the trunk was never pushed", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		_, err = newSceneClient(scene, git.WithTrunk("main")).GetLatestCommitOnTrunk(context.Background())
		require.ErrorIs(t, err, mcerrors.ErrRemoteQuery)

		payload, ok := mcerrors.PayloadOf(err)
		require.True(t, ok)
		rp := payload.(git.RemotePayload)
		require.Equal(t, "origin", rp.Remote)
		require.Equal(t, "refs/heads/main", rp.Ref)
		require.Equal(t, 0, rp.Result.ExitCode)
	})

	t.Run("fails with ErrRemoteQuery when the remote does not exist", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		_, err := newSceneClient(scene, git.WithRemote("nowhere")).GetLatestCommitOnTrunk(context.Background())
		require.ErrorIs(t, err, mcerrors.ErrRemoteQuery)
	})

	t.Run("parses the first token of the first line", func(t *testing.T) {
		runner := scripted(map[string]git.Result{
			"ls-remote origin refs/heads/master": success(testSHA + "\trefs/heads/master\n"),
		})

		sha, err := git.NewClient(runner).GetLatestCommitOnTrunk(context.Background())
		require.NoError(t, err)
		require.Equal(t, testSHA, sha)
		require.Equal(t, [][]string{{"ls-remote", "origin", "refs/heads/master"}}, runner.calls)
	})

	t.Run("rejects malformed output", func(t *testing.T) {
		c := git.NewClient(scripted(map[string]git.Result{
			"ls-remote origin refs/heads/master": success("warning: redirecting to https://example.com\n"),
		}))

		_, err := c.GetLatestCommitOnTrunk(context.Background())
		require.ErrorIs(t, err, mcerrors.ErrRemoteQuery)
	})
}

func TestIsObjectID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "sha1", in: testSHA, want: true},
		{name: "sha256", in: testSHA + "0123456789abcdef01234567", want: true},
		{name: "short", in: "0123456", want: false},
		{name: "uppercase", in: "0123456789ABCDEF0123456789ABCDEF01234567", want: false},
		{name: "non hex", in: "z123456789abcdef0123456789abcdef01234567", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, git.IsObjectID(tt.in))
		})
	}
}
