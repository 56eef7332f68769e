package git_test

import (
	"context"
	"strings"

	"mergecheck.dev/mergecheck/internal/git"
)

// mockRunner implements git.Runner with a configurable closure and records
// every argument list it was called with.
type mockRunner struct {
	run   func(args ...string) (git.Result, error)
	calls [][]string
}

func (m *mockRunner) Run(_ context.Context, args ...string) (git.Result, error) {
	m.calls = append(m.calls, args)
	return m.run(args...)
}

// scripted returns a runner answering by the joined argument list.
// Unknown invocations exit 129 like git does for usage errors.
func scripted(responses map[string]git.Result) *mockRunner {
	return &mockRunner{run: func(args ...string) (git.Result, error) {
		key := strings.Join(args, " ")
		if r, ok := responses[key]; ok {
			r.Args = args
			return r, nil
		}
		return git.Result{Args: args, Stderr: "usage: " + key, ExitCode: 129}, nil
	}}
}

func success(stdout string) git.Result {
	return git.Result{Stdout: stdout}
}

func failure(code int, stderr string) git.Result {
	return git.Result{Stderr: stderr, ExitCode: code}
}
