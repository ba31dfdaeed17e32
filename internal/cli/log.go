package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the history of the current branch",
		Long: `Display the commits from HEAD back to the initial commit, following the
first parent of merge commits.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			commits, err := c.Repo.Log()
			if err != nil {
				return err
			}
			printCommits(cmd.OutOrStdout(), commits)
			return nil
		},
	}
}

func newGlobalLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit reachable from a branch",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			commits, err := c.Repo.GlobalLog()
			if err != nil {
				return err
			}
			printCommits(cmd.OutOrStdout(), commits)
			return nil
		},
	}
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <message>",
		Short: "Print the IDs of all commits with the given message",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			ids, err := c.Repo.Find(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func printCommits(w io.Writer, commits []*models.Commit) {
	yellow := color.New(color.FgYellow)
	for _, commit := range commits {
		fmt.Fprintln(w, "===")
		yellow.Fprintf(w, "commit %s\n", commit.ID)
		if commit.IsMergeCommit() {
			fmt.Fprintf(w, "Merge: %s %s\n", models.ShortID(commit.Parent(0)), models.ShortID(commit.Parent(1)))
		}
		fmt.Fprintf(w, "Date: %s\n", commit.FormattedDate())
		fmt.Fprintln(w, commit.Message)
		fmt.Fprintln(w)
	}
}
