package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/git"
	"mergecheck.dev/mergecheck/internal/output"
	"mergecheck.dev/mergecheck/internal/runtime"
)

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "verify [source] [target]",
		Short: "Print True if source merges into target without conflicts, otherwise False",
		Long: `Print True if source merges into target without conflicts, otherwise False.

target defaults to the trunk. When source is omitted on a terminal, a branch
picker is shown. The merge is computed in the object database only, so the
working tree, index and refs are left untouched.`,
		Args:              cobra.MatchAll(cobra.RangeArgs(0, 2), revisionArgs),
		ValidArgsFunction: opts.completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContext(cmd, func(ctx *runtime.Context) error {
				source, target, err := resolveVerifyArgs(cmd, ctx, args)
				if err != nil {
					return err
				}

				ctx.Splog.Debug("verifying %s into %s", source, target)
				verdict, err := ctx.Client.Verify(cmd.Context(), source, target)
				if err != nil {
					return err
				}

				if verdict.Clean() {
					ctx.Splog.Print("%s", output.ColorGreen(verdict.String()))
				} else {
					ctx.Splog.Print("%s", output.ColorRed(verdict.String()))
				}

				if exitCode && !verdict.Clean() {
					return &ExitError{Code: 1}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when the merge would conflict")
	return cmd
}

func resolveVerifyArgs(cmd *cobra.Command, ctx *runtime.Context, args []string) (string, string, error) {
	target := ctx.Client.Trunk()
	if len(args) == 2 {
		target = args[1]
	}
	if len(args) >= 1 {
		return args[0], target, nil
	}

	if !output.IsInteractive() {
		return "", "", fmt.Errorf("source branch is required when not running in a terminal")
	}

	source, err := selectBranch(cmd, ctx.Client, target)
	if err != nil {
		return "", "", err
	}
	return source, target, nil
}

// selectBranch prompts for a local branch other than target
func selectBranch(cmd *cobra.Command, client *git.Client, target string) (string, error) {
	branches, err := client.ListBranches(cmd.Context())
	if err != nil {
		return "", err
	}

	var choices []string
	for _, name := range branches {
		if name != target {
			choices = append(choices, name)
		}
	}
	if len(choices) == 0 {
		return "", fmt.Errorf("no branches other than %s to verify", target)
	}

	var selected string
	prompt := &survey.Select{
		Message: fmt.Sprintf("Branch to merge into %s:", target),
		Options: choices,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return selected, nil
}
