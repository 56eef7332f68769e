package cli

import (
	"bytes"
	"context"
	"testing"

	"mergecheck.dev/mergecheck/testhelpers"
)

type cmdResult struct {
	stdout string
	stderr string
	code   int
}

// execute runs the command tree in-process with the given arguments
func execute(t *testing.T, args ...string) cmdResult {
	t.Helper()
	t.Setenv("DEBUG", "")
	t.Setenv("MERGECHECK_LOG_FILE", "")

	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCmd("1.2.3", "abc123", "2026-01-02")
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	code := Execute(context.Background(), rootCmd)
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func newMergeScene(t *testing.T) *testhelpers.Scene {
	t.Helper()
	return testhelpers.NewScene(t, testhelpers.MergeSceneSetup)
}
