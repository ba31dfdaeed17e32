package cli

import (
	"os"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/store"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		hash          string
		compression   string
		defaultBranch string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new gitlet repository",
		Long: `Create a new gitlet repository in the current directory.

This creates a .gitlet directory holding the object store, branch refs,
staging index and commit catalog, and records the initial commit on the
default branch. The hash function is fixed once the repository exists.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg := config.New(cwd)
			cfg.Core.Hash = hash
			cfg.Core.Compression = compression
			cfg.Core.DefaultBranch = defaultBranch
			if !store.ValidBranchName(defaultBranch) {
				return errs.InvalidBranchNameError(defaultBranch)
			}

			logger, err := newLogger(cmd, cfg.Log.Level)
			if err != nil {
				return err
			}
			defer logger.Sync()

			repo, err := core.Init(cfg, core.Options{Logger: logger})
			if err != nil {
				return err
			}
			return repo.Close()
		},
	}

	cmd.Flags().StringVar(&hash, "hash", config.HashSHA1, "Object hash function (sha1 or sha2-256)")
	cmd.Flags().StringVar(&compression, "compression", config.CompressionZstd, "Object compression (zstd or none)")
	cmd.Flags().StringVar(&defaultBranch, "default-branch", config.DefaultBranch, "Name of the initial branch")
	return cmd
}
