package cli

import (
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file>",
		Short: "Unstage a file or stage its removal",
		Long: `Unstage a file that is staged for addition. If the current commit tracks
the file, stage it for removal and delete it from the working tree.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Repo.Remove(repoPath(c.Root, args[0]))
		},
	}
}
