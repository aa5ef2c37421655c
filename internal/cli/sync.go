package cli

import (
	"context"
	"fmt"

	"github.com/navsdk/chlog/internal/changelog"
	"github.com/navsdk/chlog/internal/output"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rewrite CHANGELOG.md from the fragments, commit and push",
	Long: `Assemble the unreleased changelog and persist it as CHANGELOG.md in the
changelog directory.

When the file already matches the fragments nothing is written, committed
or pushed, so running sync twice is safe. Otherwise the file is rewritten,
the changelog directory is committed and the commit is pushed using
GITHUB_TOKEN.`,
	Example: `  # CI: update and push
  GITHUB_TOKEN=... chlog sync

  # Android Auto changelog
  GITHUB_TOKEN=... chlog sync --auto

  # Update and commit locally
  chlog sync --no-push`,
	Args: noArgs,
	RunE: runSync,
}

func init() {
	syncCmd.GroupID = GroupChangelog
	syncCmd.Flags().Bool("auto", false, "Use the Android Auto changelog directory")
	syncCmd.Flags().Bool("no-push", false, "Commit without pushing (GITHUB_TOKEN not required)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	auto, _ := cmd.Flags().GetBool("auto")
	noPush, _ := cmd.Flags().GetBool("no-push")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	root := cfg.Root(auto)
	repo, err := openRepository(".")
	if err != nil {
		return err
	}
	verbosef(cmd, "repository %s", repo.Root())
	publisher, err := newPublisher(cfg, repo, noPush)
	if err != nil {
		return err
	}

	syncer := changelog.NewSyncer(newCollector(cfg), publisher, cfg.SyncCommitMessage)
	path := cfg.OutputPath(root)
	verbosef(cmd, "syncing %s", path)

	stop := output.StartSpinner(cmd.ErrOrStderr(), "Syncing "+path)
	result, err := syncer.Sync(commandContext(cmd), root, path, modeFor(auto))
	stop()
	if err != nil {
		return err
	}

	if !result.Changed {
		output.PrintSkipped(cmd.OutOrStdout(), fmt.Sprintf("%s is up to date", result.Path))
		return nil
	}
	if noPush {
		output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Updated and committed %s", result.Path))
		return nil
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Updated %s and pushed to %s", result.Path, cfg.PushRepository))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
