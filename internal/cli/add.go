package cli

import (
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Stage a file for the next commit",
		Long: `Stage the current contents of a file.

If the file is identical to the version in the current commit, any pending
addition or removal of it is dropped instead.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Repo.Add(repoPath(c.Root, args[0]))
		},
	}
}
