package cli

import (
	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout [<commit>] -- <file> | checkout <branch>",
		Short: "Restore a file or switch branches",
		Long: `Restore a file from a commit, or switch to a branch.

Examples:
  gitlet checkout -- notes.txt          Restore notes.txt from HEAD
  gitlet checkout a0c4e1f -- notes.txt  Restore notes.txt from commit a0c4e1f
  gitlet checkout feature               Switch to branch feature

Commit IDs may be abbreviated to any unique prefix.`,
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()

			var ref, file, branch string
			switch {
			case dash == 0 && len(args) == 1:
				file = args[0]
			case dash == 1 && len(args) == 2:
				ref, file = args[0], args[1]
			case dash < 0 && len(args) == 1:
				branch = args[0]
			default:
				return errIncorrectOperands
			}

			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if branch != "" {
				return c.Repo.CheckoutBranch(branch)
			}
			return c.Repo.CheckoutFile(ref, repoPath(c.Root, file))
		},
	}
}
