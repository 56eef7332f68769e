package git

import (
	"context"
	"fmt"
	"strings"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
)

// RemotePayload is the diagnostic payload attached to remote query failures
type RemotePayload struct {
	Remote string
	Ref    string
	Result Result
}

// GetLatestCommitOnTrunk returns the commit the remote's default branch points at.
// It reads the first token of the first line printed by `git ls-remote`.
func (c *Client) GetLatestCommitOnTrunk(ctx context.Context) (string, error) {
	return c.GetRemoteHead(ctx, c.trunk)
}

// GetRemoteHead returns the commit a branch on the configured remote points at
func (c *Client) GetRemoteHead(ctx context.Context, branchName string) (string, error) {
	ref := "refs/heads/" + branchName
	result, err := c.runner.Run(ctx, "ls-remote", c.remote, ref)
	if err != nil {
		return "", err
	}

	fail := func(reason string) error {
		return mcerrors.NewContextError(
			mcerrors.ErrRemoteQuery,
			fmt.Sprintf("failed to read %s from %s: %s", ref, c.remote, reason),
			RemotePayload{Remote: c.remote, Ref: ref, Result: result},
		)
	}

	if !result.Success() {
		return "", fail(fmt.Sprintf("exit status %d", result.ExitCode))
	}

	line := firstLine(result.Stdout)
	if line == "" {
		return "", fail("no such ref")
	}

	fields := strings.Fields(line)
	if !IsObjectID(fields[0]) {
		return "", fail(fmt.Sprintf("unexpected output %q", line))
	}

	return fields[0], nil
}

// IsObjectID reports whether s is a full SHA-1 or SHA-256 object name
func IsObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
