// Package cli implements the command-line interface for gitlet.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/core"
	"github.com/kilupskalvis/gitlet/internal/errs"
	"github.com/kilupskalvis/gitlet/internal/logging"
	"github.com/spf13/cobra"
)

// usageError is a malformed command line, printed verbatim
type usageError string

func (e usageError) Error() string { return string(e) }

const (
	errNoCommand         usageError = "Please enter a command."
	errUnknownCommand    usageError = "No command with that name exists."
	errIncorrectOperands usageError = "Incorrect operands."
)

// cmdContext holds the resources a command runs against
type cmdContext struct {
	Repo   *core.Repository
	Logger *logging.Logger
	Root   string
}

// Close releases the repository and flushes the logger
func (c *cmdContext) Close() {
	c.Repo.Close()
	_ = c.Logger.Sync()
}

// initContext opens the repository containing the current directory
func initContext(cmd *cobra.Command) (*cmdContext, error) {
	root, err := config.FindRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	repo, err := core.Open(root, core.Options{Logger: logger})
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return &cmdContext{Repo: repo, Logger: logger, Root: root}, nil
}

// logLevelEnv overrides the configured log level when set
const logLevelEnv = "GITLET_LOG_LEVEL"

// newLogger builds the zap logger. The level comes from --log-level, then
// $GITLET_LOG_LEVEL, then the repository config.
func newLogger(cmd *cobra.Command, level string) (*logging.Logger, error) {
	if env := os.Getenv(logLevelEnv); env != "" {
		level = env
	}
	if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
		level = flag.Value.String()
	}
	if level == "" {
		level = config.DefaultLogLevel
	}
	return logging.NewLogger(level)
}

// repoPath converts a path given on the command line, relative to the
// current directory, into a slash-separated path relative to root.
func repoPath(root, arg string) string {
	p := arg
	if !filepath.IsAbs(p) {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.ToSlash(arg)
		}
		p = filepath.Join(cwd, p)
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(arg)
	}
	return filepath.ToSlash(rel)
}

// exactArgs rejects any other number of operands with "Incorrect operands."
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errIncorrectOperands
		}
		return nil
	}
}

// maximumArgs rejects more than n operands with "Incorrect operands."
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return errIncorrectOperands
		}
		return nil
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitlet",
		Short: "A minimal local version-control system",
		Long: `Gitlet is a small, local, single-user version-control system. It keeps
snapshots of a working tree in a content-addressed object store and supports
branches, checkout, reset and three-way merges.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoCommand
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the repository config")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errIncorrectOperands
	})

	rootCmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newCommitCmd(),
		newRmCmd(),
		newLogCmd(),
		newGlobalLogCmd(),
		newFindCmd(),
		newStatusCmd(),
		newCheckoutCmd(),
		newBranchCmd(),
		newRmBranchCmd(),
		newResetCmd(),
		newMergeCmd(),
		newCompletionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	return run(os.Args[1:], os.Stdout)
}

func run(args []string, out io.Writer) int {
	if args == nil {
		args = []string{}
	}

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	if err := rootCmd.Execute(); err != nil {
		printError(out, err)
		return 1
	}
	return 0
}

// printError writes one line for err. Usage and precondition failures are
// printed verbatim; anything else is prefixed with "error: ".
func printError(w io.Writer, err error) {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		fmt.Fprintln(w, usage.Error())
	case strings.HasPrefix(err.Error(), "unknown command"):
		fmt.Fprintln(w, errUnknownCommand.Error())
	case errs.IsPrecondition(err):
		fmt.Fprintln(w, err.Error())
	default:
		fmt.Fprintf(w, "error: %v\n", err)
	}
}
