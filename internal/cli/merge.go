package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Long: `Merge the given branch into the current branch.

If the given branch is an ancestor of the current branch nothing changes.
If the current branch is an ancestor of the given branch it is
fast-forwarded. Otherwise files are merged against the latest common
ancestor and a merge commit is created; files changed differently on both
sides are written with conflict markers and included in that commit.`,
		Args:              exactArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.Repo.Merge(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case result.UpToDate:
				fmt.Fprintln(w, "Given branch is an ancestor of the current branch.")
			case result.FastForward:
				color.New(color.FgGreen).Fprintln(w, "Current branch fast-forwarded.")
			case result.HasConflicts():
				color.New(color.FgRed, color.Bold).Fprintln(w, "Encountered a merge conflict.")
			}
			return nil
		},
	}
}
