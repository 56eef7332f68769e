package git

import (
	"context"
	"strings"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
)

const (
	// DefaultRemote is the remote queried when none is configured
	DefaultRemote = "origin"

	// DefaultTrunk is the default branch name used when none is configured
	DefaultTrunk = "master"
)

// Client answers merge questions by shelling out to git through a Runner.
// It holds no state between calls.
type Client struct {
	runner Runner
	remote string
	trunk  string
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithRemote sets the remote used by GetLatestCommitOnTrunk
func WithRemote(remote string) ClientOption {
	return func(c *Client) {
		if remote != "" {
			c.remote = remote
		}
	}
}

// WithTrunk sets the default branch used by GetLatestCommitOnTrunk
func WithTrunk(trunk string) ClientOption {
	return func(c *Client) {
		if trunk != "" {
			c.trunk = trunk
		}
	}
}

// NewClient creates a Client on top of the given runner
func NewClient(runner Runner, opts ...ClientOption) *Client {
	c := &Client{
		runner: runner,
		remote: DefaultRemote,
		trunk:  DefaultTrunk,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remote returns the configured remote name
func (c *Client) Remote() string {
	return c.remote
}

// Trunk returns the configured default branch name
func (c *Client) Trunk() string {
	return c.trunk
}

// Run executes a raw git invocation. See Runner.Run.
func (c *Client) Run(ctx context.Context, args ...string) (Result, error) {
	return c.runner.Run(ctx, args...)
}

// runChecked runs git and converts a non-zero exit into a GitCommandError
func (c *Client) runChecked(ctx context.Context, args ...string) (Result, error) {
	result, err := c.runner.Run(ctx, args...)
	if err != nil {
		return result, err
	}
	if !result.Success() {
		return result, mcerrors.NewGitCommandError(DefaultBinary, args, result.Stdout, result.Stderr, result.ExitCode, nil)
	}
	return result, nil
}

// Version returns the trimmed output of `git --version`
func (c *Client) Version(ctx context.Context) (string, error) {
	result, err := c.runChecked(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// ListBranches returns the short names of all local branches
func (c *Client) ListBranches(ctx context.Context) ([]string, error) {
	result, err := c.runChecked(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	return splitLines(result.Stdout), nil
}

// splitLines splits output into trimmed, non-empty lines
func splitLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// firstLine returns the first non-empty line of output
func firstLine(s string) string {
	lines := splitLines(s)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
