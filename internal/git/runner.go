package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	mcerrors "mergecheck.dev/mergecheck/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// DefaultBinary is the executable invoked when no other is configured
const DefaultBinary = "git"

// Result is the captured outcome of a single git invocation.
type Result struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Success reports whether the process exited with status zero
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes git with an argument list.
// Implementations return a Result for every process that ran, whatever its exit
// code, and an error only when the process could not run to completion.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	binary     string
	workingDir string
	timeout    time.Duration
	logger     *slog.Logger
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithBinary sets the executable to invoke instead of "git"
func WithBinary(binary string) RunnerOption {
	return func(r *CommandRunner) {
		if binary != "" {
			r.binary = binary
		}
	}
}

// WithTimeout sets the timeout applied when the caller's context has no deadline
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *CommandRunner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithLogger sets the logger that receives one debug record per invocation
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *CommandRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewCommandRunner creates a new CommandRunner.
// An empty workingDir runs commands in the process's current directory.
func NewCommandRunner(workingDir string, opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{
		binary:     DefaultBinary,
		workingDir: workingDir,
		timeout:    DefaultCommandTimeout,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes git with the given arguments and captures its output.
// A non-zero exit status is not an error; it is reported in Result.ExitCode.
func (r *CommandRunner) Run(ctx context.Context, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Args:     args,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	r.logger.Debug("git invocation",
		"args", args,
		"dir", r.workingDir,
		"exit", result.ExitCode,
		"duration", result.Duration)

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, mcerrors.NewContextError(mcerrors.ErrCanceled, "git "+firstArg(args)+" did not finish", result).
			WithCause(ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, nil
	}

	// The process never started: missing binary, bad directory or permissions
	result.ExitCode = -1
	return result, mcerrors.NewContextError(mcerrors.ErrSpawn, "failed to start "+r.binary, result).WithCause(err)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
