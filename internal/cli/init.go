package cli

import (
	"fmt"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/config"
	"mergecheck.dev/mergecheck/internal/git"
	"mergecheck.dev/mergecheck/internal/output"
	"mergecheck.dev/mergecheck/internal/runtime"
)

// commonTrunkNames are tried in order when no trunk is given
var commonTrunkNames = []string{config.DefaultTrunk, "main", "develop", "trunk"}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the trunk and remote for this repository to its mergecheck config",
		Long: `Write the trunk and remote for this repository to .mergecheck_config in
its git directory, shared by all of its worktrees.

Pass --trunk and --remote to choose them explicitly. Otherwise the trunk is
inferred from commonly used branch names, or picked interactively on a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withContext(cmd, func(ctx *runtime.Context) error {
				branchNames, err := ctx.Client.ListBranches(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get branches: %w", err)
				}
				if len(branchNames) == 0 {
					return fmt.Errorf("no branches found in current repo; create your first commit and then re-run mergecheck init")
				}

				trunkName := opts.trunk
				if trunkName == "" {
					trunkName, err = selectTrunkBranch(branchNames, output.IsInteractive())
					if err != nil {
						return err
					}
				} else if !slices.Contains(branchNames, trunkName) {
					return fmt.Errorf("branch '%s' not found", trunkName)
				}

				remoteName := ctx.Config.RemoteName()
				if opts.remote != "" {
					if _, err := git.RemoteURL(ctx.RepoRoot, opts.remote); err != nil {
						return err
					}
					remoteName = opts.remote
				}

				wasInitialized := config.IsInitialized(ctx.GitDir)
				cfg := ctx.Config
				cfg.Trunk = &trunkName
				cfg.Remote = &remoteName
				if err := config.Save(ctx.GitDir, cfg); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}

				if wasInitialized {
					ctx.Splog.Info("Reinitializing mergecheck...")
				}
				ctx.Splog.Info("Trunk set to %s", output.ColorBranchName(trunkName))
				ctx.Splog.Info("Remote set to %s", output.ColorBranchName(remoteName))
				return nil
			})
		},
	}
}

// selectTrunkBranch infers the trunk from common names, prompting when that fails
func selectTrunkBranch(branchNames []string, interactive bool) (string, error) {
	for _, name := range commonTrunkNames {
		if slices.Contains(branchNames, name) {
			return name, nil
		}
	}

	if !interactive {
		return "", fmt.Errorf("could not infer trunk branch, pass in an existing branch name with --trunk or run in interactive mode")
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select the trunk branch:",
		Options: branchNames,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return selected, nil
}
