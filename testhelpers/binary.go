package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	sharedBinaryPath string
	binaryOnce       sync.Once
	binaryErr        error
)

// MergecheckBinary returns the path to a mergecheck binary built once per
// test process from ./cmd/mergecheck.
func MergecheckBinary(t *testing.T) string {
	t.Helper()
	binaryOnce.Do(func() {
		sharedBinaryPath, binaryErr = buildBinary()
	})
	if binaryErr != nil {
		t.Fatalf("failed to build mergecheck binary: %v", binaryErr)
	}
	return sharedBinaryPath
}

// buildBinary builds the mergecheck binary and returns its path.
// The binary lives in a temp dir that is left for the OS to reclaim,
// since it is shared by every test in the process.
func buildBinary() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "mergecheck-test-binary-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "mergecheck")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mergecheck")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to build: %s: %w", string(output), err)
	}

	return binaryPath, nil
}

// findModuleRoot walks up from startDir to the directory containing go.mod.
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
