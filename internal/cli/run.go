package cli

import (
	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/output"
	"mergecheck.dev/mergecheck/internal/runtime"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- <git args...>",
		Short: "Run git with the given arguments and report its output and exit code",
		Long: `Run git with the given arguments and report its output and exit code.

git runs in the current directory, or the one given with --cwd, exactly as
if invoked there. No repository is required.`,
		Example: `  mergecheck run -- log --oneline -5
  mergecheck run -- rev-parse --verify --quiet refs/heads/main`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSplog(cmd, func(splog *output.Splog) error {
				client := runtime.NewWorkingDirClient(cmd.Context(), splog, opts.dir)
				result, err := client.Run(cmd.Context(), args...)
				if err != nil {
					return err
				}

				splog.Page(result.Stdout)
				splog.PageErr(result.Stderr)
				if !result.Success() {
					return &ExitError{Code: result.ExitCode}
				}
				return nil
			})
		},
	}
	// Everything after the first git argument belongs to git
	cmd.Flags().SetInterspersed(false)
	return cmd
}
