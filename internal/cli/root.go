// Package cli implements the chlog command line.
package cli

import (
	stderrors "errors"
	"os"

	"github.com/navsdk/chlog/internal/changelog"
	clierrors "github.com/navsdk/chlog/internal/errors"
	"github.com/navsdk/chlog/internal/git"
	"github.com/navsdk/chlog/internal/output"
	"github.com/navsdk/chlog/internal/rename"
	"github.com/spf13/cobra"
)

// Command groups
const (
	GroupChangelog = "changelog"
	GroupFragments = "fragments"
	GroupInternal  = "internal"
)

var (
	configPath string
	workDir    string
	debug      bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "chlog",
	Short: "Assemble the unreleased changelog from pull request fragments",
	Long: `chlog builds the unreleased changelog from fragment files.

Each pull request adds one markdown fragment under
changelog/unreleased/{features,bugfixes,issues,other}/. CI renames new
fragments to <pr-number>.md, and the release job assembles them into
changelog/unreleased/CHANGELOG.md.`,
	Example: `  # Print the changelog
  chlog assemble

  # Print the Android Auto changelog
  chlog assemble --auto

  # Rename this pull request's fragments, commit and push (CI)
  PR_NUMBER=123 GITHUB_TOKEN=... chlog rename

  # Rewrite CHANGELOG.md if fragments changed, commit and push (CI)
  GITHUB_TOKEN=... chlog sync`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workDir != "" {
			if err := os.Chdir(workDir); err != nil {
				return clierrors.Wrapf(err, clierrors.Prerequisite, "changing directory to %s", workDir)
			}
		}
		setDebugLogging(cmd, debug)
		return nil
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupFragments, Title: "Fragment Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default .chlog.yml)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "chdir", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Report each step on stderr")

	rootCmd.SetFlagErrorFunc(flagError)
}

// setDebugLogging routes package debug output to the command's stderr.
func setDebugLogging(cmd *cobra.Command, enabled bool) {
	var logger func(format string, args ...any)
	if enabled {
		logger = output.DebugLogger(cmd.ErrOrStderr())
	}
	changelog.SetDebugLogger(logger)
	rename.SetDebugLogger(logger)
	git.SetDebugLogger(logger)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(rootCmd)
}

func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	cliErr := classify(err)
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
	if cliErr.Category == clierrors.Argument {
		return ExitInvalidArguments
	}
	return ExitFailure
}

// classify turns any error into a CLIError with remediation where we know one.
func classify(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var policyErr *rename.PolicyViolationError
	if stderrors.As(err, &policyErr) {
		return clierrors.TooManyFragments(policyErr.Dir, err)
	}

	var pushErr *git.PushError
	if stderrors.As(err, &pushErr) {
		return clierrors.PushFailed(pushErr.Remote, pushErr.Err)
	}

	if isFlagError(err) {
		return clierrors.Wrap(err, clierrors.Argument, "Run 'chlog --help' for usage")
	}

	return clierrors.Wrap(err, clierrors.Runtime)
}
