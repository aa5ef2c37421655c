package cli

import (
	"fmt"

	clierrors "github.com/navsdk/chlog/internal/errors"
	"github.com/navsdk/chlog/internal/output"
	"github.com/navsdk/chlog/internal/rename"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename this pull request's new fragments to <PR_NUMBER>.md",
	Long: `Rename the newly added fragment in bugfixes/ and features/ to
<PR_NUMBER>.md, then commit the changelog directory and push it.

A category may hold at most one fragment that is not yet named after a
pull request. More than one is a policy violation and nothing is renamed
in that category.

Requires PR_NUMBER, and GITHUB_TOKEN unless --no-push is given.`,
	Example: `  # CI
  PR_NUMBER=123 GITHUB_TOKEN=... chlog rename

  # Rename and commit locally
  PR_NUMBER=123 chlog rename --no-push`,
	Args: noArgs,
	RunE: runRename,
}

func init() {
	renameCmd.GroupID = GroupFragments
	renameCmd.Flags().Bool("no-push", false, "Commit without pushing (GITHUB_TOKEN not required)")
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	noPush, _ := cmd.Flags().GetBool("no-push")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.PRNumber == "" {
		return clierrors.MissingEnvironment("PR_NUMBER", "the pull request the fragments belong to")
	}

	repo, err := openRepository(".")
	if err != nil {
		return err
	}
	verbosef(cmd, "repository %s", repo.Root())
	publisher, err := newPublisher(cfg, repo, noPush)
	if err != nil {
		return err
	}

	renamer, err := rename.NewRenamer(rename.Options{
		PRNumber:      cfg.PRNumber,
		Root:          cfg.ChangelogDir,
		CommitMessage: cfg.RenameCommitMessage,
	}, publisher)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration)
	}

	verbosef(cmd, "renaming fragments in %s to %s.md", cfg.ChangelogDir, cfg.PRNumber)
	stop := output.StartSpinner(cmd.ErrOrStderr(), "Renaming fragments")
	result, err := renamer.Run(commandContext(cmd))
	stop()
	if err != nil {
		return err
	}

	if result.Renamed == 0 {
		output.PrintSkipped(cmd.OutOrStdout(), "No fragments to rename")
		return nil
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Renamed %d fragment(s) to %s.md", result.Renamed, cfg.PRNumber))
	return nil
}
