// Package errors provides sentinel errors and custom error types for mergecheck.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel error kinds carried by ContextError
var (
	// ErrSpawn indicates that the git binary could not be started at all
	ErrSpawn = errors.New("failed to start git")

	// ErrNoCommonAncestor indicates that two revisions share no history
	ErrNoCommonAncestor = errors.New("no common ancestor")

	// ErrRemoteQuery indicates that the remote returned nothing usable
	ErrRemoteQuery = errors.New("remote query failed")

	// ErrVerification indicates that a trial merge failed for a reason other than conflicts
	ErrVerification = errors.New("merge verification failed")

	// ErrCanceled indicates that the caller's context ended while git was running
	ErrCanceled = errors.New("git command canceled")
)

// ContextError is an error that carries an arbitrary diagnostic payload and
// the time at which the failure was detected.
type ContextError struct {
	Kind    error
	Message string
	Payload any
	Time    time.Time
	Err     error
}

// NewContextError creates a ContextError stamped with the current time.
func NewContextError(kind error, message string, payload any) *ContextError {
	return &ContextError{
		Kind:    kind,
		Message: message,
		Payload: payload,
		Time:    time.Now(),
	}
}

// WithCause attaches the lower-level error that triggered this one.
func (e *ContextError) WithCause(err error) *ContextError {
	e.Err = err
	return e
}

func (e *ContextError) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is returns true if the target is this error's kind
func (e *ContextError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *ContextError) Unwrap() error {
	return e.Err
}

// PayloadOf extracts the payload of the first ContextError in err's chain.
func PayloadOf(err error) (any, bool) {
	var ce *ContextError
	if !errors.As(err, &ce) {
		return nil, false
	}
	return ce.Payload, true
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}
