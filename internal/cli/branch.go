package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [<name>]",
		Short: "Create a branch, or list branches",
		Long: `Create a branch pointing at the current commit. The new branch is not
checked out. Without a name, list the branches with the current one marked.`,
		Args: maximumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if len(args) == 1 {
				return c.Repo.CreateBranch(args[0])
			}

			branches, current, err := c.Repo.ListBranches()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			green := color.New(color.FgGreen)
			for _, b := range branches {
				if b.Name == current {
					green.Fprintf(w, "* %s\n", b.Name)
				} else {
					fmt.Fprintf(w, "  %s\n", b.Name)
				}
			}
			return nil
		},
	}
}

func newRmBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rm-branch <name>",
		Short:             "Delete a branch",
		Long:              `Delete the named branch pointer. Commits made on it are kept.`,
		Args:              exactArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Repo.DeleteBranch(args[0])
		},
	}
}
