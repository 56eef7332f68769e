package git

import (
	"context"
	"fmt"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
)

// MergePayload is the diagnostic payload attached to merge-base and verify failures
type MergePayload struct {
	Source string
	Target string
	Result Result
}

// GetMergeBase returns the most recent common ancestor of two revisions.
// A non-zero exit or empty output means the revisions share no history.
func (c *Client) GetMergeBase(ctx context.Context, rev1, rev2 string) (string, error) {
	result, err := c.runner.Run(ctx, "merge-base", rev1, rev2)
	if err != nil {
		return "", err
	}

	sha := firstLine(result.Stdout)
	if !result.Success() || sha == "" {
		return "", mcerrors.NewContextError(
			mcerrors.ErrNoCommonAncestor,
			fmt.Sprintf("no merge base between %s and %s", rev1, rev2),
			MergePayload{Source: rev1, Target: rev2, Result: result},
		)
	}

	return sha, nil
}
