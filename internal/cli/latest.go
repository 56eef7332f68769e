package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/github"
	"mergecheck.dev/mergecheck/internal/output"
	"mergecheck.dev/mergecheck/internal/runtime"
)

const (
	sourceGit    = "git"
	sourceGitHub = "github"
)

func newLatestCmd(opts *rootOptions) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Print the commit the trunk points at on the remote",
		Long: `Print the commit the trunk branch points at on the remote.

By default the remote is asked directly with git ls-remote. With
--source github the GitHub API is used instead, authenticated with
GITHUB_TOKEN, GH_TOKEN or the gh CLI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if source != sourceGit && source != sourceGitHub {
				return fmt.Errorf("invalid source %q: must be %q or %q", source, sourceGit, sourceGitHub)
			}

			return opts.withContext(cmd, func(ctx *runtime.Context) error {
				var sha string
				var err error
				if source == sourceGitHub {
					sha, err = latestFromGitHub(cmd, ctx)
				} else {
					sha, err = ctx.Client.GetLatestCommitOnTrunk(cmd.Context())
				}
				if err != nil {
					return err
				}
				ctx.Splog.Print("%s", output.ColorCommit(sha))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", sourceGit, "Where to read the trunk head from: git or github")
	return cmd
}

func latestFromGitHub(cmd *cobra.Command, ctx *runtime.Context) (string, error) {
	info, err := github.RepoInfoForRemote(ctx.RepoRoot, ctx.Client.Remote())
	if err != nil {
		return "", err
	}

	token, err := github.Token(cmd.Context(), info.Hostname)
	if err != nil {
		return "", err
	}

	client, err := github.NewClient(cmd.Context(), info, token)
	if err != nil {
		return "", err
	}

	ctx.Splog.Debug("reading %s/%s@%s from %s", info.Owner, info.Repo, ctx.Client.Trunk(), info.Hostname)
	return client.BranchHead(cmd.Context(), ctx.Client.Trunk())
}
