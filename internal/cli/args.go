package cli

import (
	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/git"
	"mergecheck.dev/mergecheck/internal/runtime"
)

// completeBranches is a cobra.ValidArgsFunction returning local branch names
func (o *rootOptions) completeBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var branches []string
	err := o.withContext(cmd, func(ctx *runtime.Context) error {
		var err error
		branches, err = ctx.Client.ListBranches(cmd.Context())
		return err
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}

// revisionArgs is a cobra.PositionalArgs rejecting arguments git would misread
func revisionArgs(_ *cobra.Command, args []string) error {
	for _, arg := range args {
		if err := git.ValidateRevision(arg); err != nil {
			return err
		}
	}
	return nil
}
