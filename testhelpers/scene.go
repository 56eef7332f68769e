// Package testhelpers provides shared test utilities: temporary git
// repositories with a known layout of branches.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// The process working directory is moved into the scene and restored on cleanup,
// so scenes must not be used from parallel tests.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mergecheck-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	// macOS temp dirs are symlinks; go-git reports the resolved path
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	if err := os.Chdir(tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		t.Fatalf("Failed to change directory: %v", err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
		if os.Getenv("DEBUG") == "" {
			_ = os.RemoveAll(tmpDir)
			remotes, _ := filepath.Glob(tmpDir + "-*.git")
			for _, remote := range remotes {
				_ = os.RemoveAll(remote)
			}
		}
	})

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// NewWorktree checks out branch in a linked worktree outside the scene
// directory and returns its path.
func (s *Scene) NewWorktree(t *testing.T, branch string) string {
	t.Helper()
	parent, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	wt := filepath.Join(parent, "wt")
	if err := s.Repo.RunGitCommand("worktree", "add", "--quiet", wt, branch); err != nil {
		t.Fatalf("Failed to add worktree: %v", err)
	}
	return wt
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// MergeSceneSetup builds the branch layout used by merge verification tests:
//
//	main           base commit, then "shared.txt" = "main"
//	release        from base, adds release.txt only (merges cleanly into main)
//	feature        from base, sets "shared.txt" = "feature" (conflicts with main)
//
// main is checked out afterwards.
func MergeSceneSetup(scene *Scene) error {
	r := scene.Repo
	if err := r.CommitFile("shared.txt", "base\n", "base"); err != nil {
		return err
	}
	if err := r.CreateBranch("release"); err != nil {
		return err
	}
	if err := r.CreateBranch("feature"); err != nil {
		return err
	}
	if err := r.CommitFile("shared.txt", "main\n", "main change"); err != nil {
		return err
	}

	if err := r.CheckoutBranch("release"); err != nil {
		return err
	}
	if err := r.CommitFile("release.txt", "release\n", "release change"); err != nil {
		return err
	}

	if err := r.CheckoutBranch("feature"); err != nil {
		return err
	}
	if err := r.CommitFile("shared.txt", "feature\n", "feature change"); err != nil {
		return err
	}

	return r.CheckoutBranch("main")
}
