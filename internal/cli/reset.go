package cli

import (
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <commit>",
		Short: "Move the current branch to a commit",
		Long: `Check out every file of the given commit, delete tracked files the commit
does not have, move the current branch to it and clear the staging area.

The commit ID may be abbreviated to any unique prefix.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			_, err = c.Repo.Reset(args[0])
			return err
		},
	}
}
