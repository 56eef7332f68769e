// Package config manages mergecheck configuration.
//
// Settings live in .mergecheck_config inside the repository's common git
// directory, so linked worktrees share them. The file is JSON:
//   - trunk: the remote default branch (default "master")
//   - remote: the remote to query (default "origin")
//   - gitBinary and commandTimeoutSeconds: how git is invoked
package config
