package git

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
)

// Verdict is the answer to "does source merge cleanly into target?"
type Verdict string

const (
	// Mergeable means a trial merge produced no conflicts
	Mergeable Verdict = "True"
	// Conflicting means a trial merge produced at least one conflict
	Conflicting Verdict = "False"
)

func (v Verdict) String() string {
	return string(v)
}

// Clean reports whether the verdict is Mergeable
func (v Verdict) Clean() bool {
	return v == Mergeable
}

// writeTreeMinVersion is the first git release with `merge-tree --write-tree`
var writeTreeMinVersion = semver.MustParse("2.38.0")

var gitVersionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// legacyConflictMarker is printed by the trivial merge-tree mode for each conflicted hunk
const legacyConflictMarker = "+<<<<<<< .our"

// ParseGitVersion parses the output of `git --version`, e.g.
// "git version 2.39.3 (Apple Git-145)" or "git version 2.42.0.windows.2".
func ParseGitVersion(output string) (*semver.Version, error) {
	raw := gitVersionPattern.FindString(output)
	if raw == "" {
		return nil, fmt.Errorf("unrecognized git version output %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse git version %q: %w", raw, err)
	}
	return v, nil
}

// Verify reports whether source can be merged into target without conflicts.
// The check is a trial merge that never touches the working tree, index or refs.
// Conflicts are a Conflicting verdict, not an error; any other failure is
// returned as an ErrVerification ContextError.
func (c *Client) Verify(ctx context.Context, source, target string) (Verdict, error) {
	versionOutput, err := c.Version(ctx)
	if err != nil {
		if isRunFailure(err) {
			return "", err
		}
		return "", c.verificationError(source, target, Result{}, err)
	}
	version, err := ParseGitVersion(versionOutput)
	if err != nil {
		return "", c.verificationError(source, target, Result{}, err)
	}

	for _, rev := range []string{target, source} {
		if err := c.resolveCommit(ctx, source, target, rev); err != nil {
			return "", err
		}
	}

	if version.LessThan(writeTreeMinVersion) {
		return c.verifyLegacy(ctx, source, target)
	}
	return c.verifyWriteTree(ctx, source, target)
}

// resolveCommit checks that rev names a commit, so a typo is reported as a
// failure rather than read back from merge-tree as a conflict.
func (c *Client) resolveCommit(ctx context.Context, source, target, rev string) error {
	result, err := c.runner.Run(ctx, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		return err
	}
	if !result.Success() || !IsObjectID(firstLine(result.Stdout)) {
		return c.verificationError(source, target, result, fmt.Errorf("%s is not a commit", rev))
	}
	return nil
}

// verifyWriteTree uses `merge-tree --write-tree`, which exits 0 for a clean
// merge and 1 when there are conflicts. Both print the resulting tree id first;
// an exit 1 without one is a failed invocation.
func (c *Client) verifyWriteTree(ctx context.Context, source, target string) (Verdict, error) {
	result, err := c.runner.Run(ctx, "merge-tree", "--write-tree", "--no-messages", target, source)
	if err != nil {
		return "", err
	}

	switch {
	case result.ExitCode == 0:
		return Mergeable, nil
	case result.ExitCode == 1 && IsObjectID(firstLine(result.Stdout)):
		return Conflicting, nil
	default:
		return "", c.verificationError(source, target, result, nil)
	}
}

// verifyLegacy uses the trivial three-way merge-tree mode of older git
// releases. It always exits 0, so conflicts are read from the merge output.
func (c *Client) verifyLegacy(ctx context.Context, source, target string) (Verdict, error) {
	base, err := c.GetMergeBase(ctx, target, source)
	if err != nil {
		if isRunFailure(err) {
			return "", err
		}
		var payload Result
		if p, ok := mcerrors.PayloadOf(err); ok {
			if mp, ok := p.(MergePayload); ok {
				payload = mp.Result
			}
		}
		return "", c.verificationError(source, target, payload, err)
	}

	result, err := c.runner.Run(ctx, "merge-tree", base, target, source)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", c.verificationError(source, target, result, nil)
	}

	if hasLegacyConflict(result.Stdout) {
		return Conflicting, nil
	}
	return Mergeable, nil
}

// isRunFailure reports whether git itself could not run, as opposed to
// running and returning something unexpected
func isRunFailure(err error) bool {
	return errors.Is(err, mcerrors.ErrSpawn) || errors.Is(err, mcerrors.ErrCanceled)
}

func (c *Client) verificationError(source, target string, result Result, cause error) error {
	e := mcerrors.NewContextError(
		mcerrors.ErrVerification,
		fmt.Sprintf("failed to verify merge of %s into %s", source, target),
		MergePayload{Source: source, Target: target, Result: result},
	)
	if cause != nil {
		e = e.WithCause(cause)
	}
	return e
}

// hasLegacyConflict reads the output of the trivial merge-tree mode.
// Content conflicts show up as marker blocks. A file one side removed while
// the other changed it carries no markers, only its section and stage lines:
//
//	removed in local
//	  base   100644 <id> file
//	  their  100644 <id> file
func hasLegacyConflict(output string) bool {
	if strings.Contains(output, legacyConflictMarker) {
		return true
	}

	var section string
	ids := map[string]string{}
	modifyDelete := func() bool {
		switch section {
		case "removed in local":
			return ids["their"] != ids["base"]
		case "removed in remote":
			return ids["our"] != ids["base"]
		}
		return false
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if line[0] >= 'a' && line[0] <= 'z' {
			if modifyDelete() {
				return true
			}
			section = line
			ids = map[string]string{}
			continue
		}
		if fields := strings.Fields(line); strings.HasPrefix(line, "  ") && len(fields) >= 4 {
			switch fields[0] {
			case "base", "our", "their":
				ids[fields[0]] = fields[2]
			}
		}
	}
	return modifyDelete()
}
