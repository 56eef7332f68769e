package cli

import (
	"github.com/spf13/cobra"

	"mergecheck.dev/mergecheck/internal/output"
	"mergecheck.dev/mergecheck/internal/runtime"
)

func newVersionCmd(opts *rootOptions, version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mergecheck and git versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withSplog(cmd, func(splog *output.Splog) error {
				splog.Print("mergecheck version %s (commit %s, built %s)", version, commit, date)

				gitVersion, err := runtime.NewStandaloneClient(splog).Version(cmd.Context())
				if err != nil {
					splog.Warn("could not determine the git version: %v", err)
					return nil
				}
				splog.Print("%s", gitVersion)
				return nil
			})
		},
	}
}
