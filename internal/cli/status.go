package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
		Long: `Show the branches, the files staged for addition or removal, tracked
files changed in the working tree but not staged, and untracked files.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initContext(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			status, err := c.Repo.Status()
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func printStatus(w io.Writer, status *models.Status) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintln(w, "=== Branches ===")
	for _, name := range status.Branches {
		if name == status.CurrentBranch {
			green.Fprintf(w, "*%s\n", name)
		} else {
			fmt.Fprintln(w, name)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Staged Files ===")
	for _, name := range status.Staged {
		green.Fprintln(w, name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Removed Files ===")
	for _, name := range status.Removed {
		red.Fprintln(w, name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Modifications Not Staged For Commit ===")
	for _, m := range status.Modifications {
		red.Fprintf(w, "%s (%s)\n", m.Filename, m.Kind)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Untracked Files ===")
	for _, name := range status.Untracked {
		red.Fprintln(w, name)
	}
	fmt.Fprintln(w)
}
