// Package runtime provides the execution context for mergecheck commands.
//
// It wires the repository configuration, the console logger and the git
// client together so commands receive a single value.
package runtime
