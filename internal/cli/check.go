package cli

import (
	"fmt"

	"github.com/navsdk/chlog/internal/changelog"
	clierrors "github.com/navsdk/chlog/internal/errors"
	"github.com/navsdk/chlog/internal/output"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify CHANGELOG.md matches the fragments",
	Long: `Compare CHANGELOG.md with what sync would write.

Returns exit code 0 if the file is in sync, or exit code 1 if it is
missing or out of date. Nothing is written.`,
	Example: `  chlog check
  chlog check --auto`,
	Args: noArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupChangelog
	checkCmd.Flags().Bool("auto", false, "Use the Android Auto changelog directory")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	auto, _ := cmd.Flags().GetBool("auto")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	root := cfg.Root(auto)
	syncer := changelog.NewSyncer(newCollector(cfg), nil, cfg.SyncCommitMessage)
	result, err := syncer.Check(root, cfg.OutputPath(root), modeFor(auto))
	if err != nil {
		return err
	}

	if result.Changed {
		output.PrintFailure(cmd.OutOrStdout(), fmt.Sprintf("%s is out of sync", result.Path))
		return clierrors.ChangelogOutOfSync(result.Path)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is in sync", result.Path))
	return nil
}
