package cli

import (
	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/output"
	"mergecheck.dev/mergecheck/internal/runtime"
)

func newMergeBaseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "merge-base <rev> <rev>",
		Short:             "Print the best common ancestor of two revisions",
		Args:              cobra.MatchAll(cobra.ExactArgs(2), revisionArgs),
		ValidArgsFunction: opts.completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContext(cmd, func(ctx *runtime.Context) error {
				sha, err := ctx.Client.GetMergeBase(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				ctx.Splog.Print("%s", output.ColorCommit(sha))
				return nil
			})
		},
	}
}
