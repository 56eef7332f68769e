// Package cli implements the mergecheck command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/output"
	"mergecheck.dev/mergecheck/internal/runtime"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	debug   bool
	noColor bool
	logFile bool
	dir     string
	trunk   string
	remote  string
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mergecheck",
		Short: "Check whether a branch merges cleanly, without touching the working tree",
		Long: `mergecheck answers one question: would merging a branch into another
conflict? It runs a trial merge in git's object database and prints True or
False. The working tree, index and refs are never modified.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Write debug output, including every git invocation, to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.logFile, "log", false, "Also write a debug log to "+output.GetLogFilePath())
	flags.StringVarP(&opts.dir, "cwd", "C", "", "Run as if started in this directory")
	flags.StringVar(&opts.trunk, "trunk", "", "Trunk branch (overrides the repo config)")
	flags.StringVar(&opts.remote, "remote", "", "Remote to query (overrides the repo config)")

	rootCmd.AddCommand(
		newVersionCmd(opts, version, commit, date),
		newRunCmd(opts),
		newMergeBaseCmd(opts),
		newLatestCmd(opts),
		newVerifyCmd(opts),
		newInitCmd(opts),
	)

	return rootCmd
}

// Execute runs the command tree and returns the process exit code
func Execute(ctx context.Context, rootCmd *cobra.Command) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "❌ %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	fmt.Fprintf(rootCmd.ErrOrStderr(), "❌ %v\n", err)
	return 1
}

// withSplog runs fn with a logger bound to the command's output streams
func (o *rootOptions) withSplog(cmd *cobra.Command, fn func(*output.Splog) error) error {
	logFilePath := ""
	if o.logFile || os.Getenv("MERGECHECK_LOG_FILE") != "" {
		logFilePath = output.GetLogFilePath()
	}

	splog, err := output.NewSplogWithOptions(output.Options{
		Writer:      cmd.OutOrStdout(),
		ErrWriter:   cmd.ErrOrStderr(),
		Debug:       o.debug || os.Getenv("DEBUG") != "",
		LogFilePath: logFilePath,
	})
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()

	output.ConfigureColor(cmd.OutOrStdout(), o.noColor)
	return fn(splog)
}

// withContext runs fn against the repository containing the working directory
func (o *rootOptions) withContext(cmd *cobra.Command, fn func(*runtime.Context) error) error {
	return o.withSplog(cmd, func(splog *output.Splog) error {
		ctx, err := runtime.NewContext(cmd.Context(), splog, runtime.Options{
			Dir:    o.dir,
			Trunk:  o.trunk,
			Remote: o.remote,
		})
		if err != nil {
			return err
		}
		return fn(ctx)
	})
}
