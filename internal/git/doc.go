// Package git answers merge questions by running the git command-line tool.
//
// It provides:
//   - A Runner that executes git and captures stdout, stderr and exit status
//   - A Client with the higher-level queries built on it (merge base,
//     remote trunk head, trial-merge verification)
//   - Repository discovery through go-git
//
// This package should be the only place where git commands are executed.
package git
