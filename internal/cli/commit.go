package cli

import (
	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: "Record the staged changes",
		Long: `Create a commit from the current commit's snapshot with the staged
additions and removals applied, advance the current branch to it and clear
the staging area.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errs.EmptyMessageError()
			}
			return exactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			_, err = c.Repo.Commit(args[0])
			return err
		},
	}
}
