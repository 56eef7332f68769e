package testhelpers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mergecheck.dev/mergecheck/testhelpers"
)

func TestMergeSceneLayout(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.MergeSceneSetup)

	testhelpers.ExpectBranches(t, scene.Repo, []string{"feature", "main", "release"})

	head, err := scene.Repo.RunGitCommandAndGetOutput("symbolic-ref", "--short", "HEAD")
	require.NoError(t, err)
	require.Equal(t, "main", head)

	// release and feature both fork from the commit before main's change
	base := testhelpers.Must(scene.Repo.GetRevision("main~1"))
	for _, branch := range []string{"release", "feature"} {
		parent, err := scene.Repo.GetRevision(branch + "~1")
		require.NoError(t, err)
		require.Equal(t, base, parent, branch)
	}

	content, err := os.ReadFile(filepath.Join(scene.Dir, "shared.txt"))
	require.NoError(t, err)
	require.Equal(t, "main\n", string(content))
}

func TestGitRepoBasicOperations(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)

	require.NoError(t, scene.Repo.CreateChangeAndCommit("test content", "test"))
	require.NoError(t, scene.Repo.CreateAndCheckoutBranch("topic"))
	require.NoError(t, scene.Repo.CommitFile("dir/file.txt", "x", "nested"))

	testhelpers.ExpectBranches(t, scene.Repo, []string{"main", "topic"})

	status, err := scene.Repo.Status()
	require.NoError(t, err)
	require.Empty(t, status)

	bare, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "topic"))
	require.DirExists(t, bare)
}

func TestCaptureState(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	before := testhelpers.CaptureState(t, scene.Repo)
	require.Equal(t, "refs/heads/main", before.Head)

	require.NoError(t, scene.Repo.CreateBranch("other"))
	require.NotEqual(t, before, testhelpers.CaptureState(t, scene.Repo))
}
