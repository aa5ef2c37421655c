package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/navsdk/chlog/internal/changelog"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Print the assembled unreleased changelog",
	Long: `Assemble the unreleased changelog from fragment files and print it.

Fragments in bugfixes/ and features/ get a link back to their pull request
on every "- " line. Sections are printed in a fixed order:

  Features, Bug fixes and improvements, Known issues, Other changes

With --auto only Features and Bug fixes are printed, read from the Android
Auto changelog directory.`,
	Example: `  # Print the changelog
  chlog assemble

  # Print the Android Auto changelog
  chlog assemble --auto

  # Reprint whenever a fragment changes
  chlog assemble --watch`,
	Args: noArgs,
	RunE: runAssemble,
}

func init() {
	assembleCmd.GroupID = GroupChangelog
	assembleCmd.Flags().Bool("auto", false, "Use the Android Auto changelog directory")
	assembleCmd.Flags().BoolP("watch", "w", false, "Reprint the changelog whenever a fragment changes")
	assembleCmd.Flags().Duration("debounce", changelog.DefaultWatchDebounce, "Wait this long after a change before reprinting")
	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	auto, _ := cmd.Flags().GetBool("auto")
	watch, _ := cmd.Flags().GetBool("watch")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	collector := newCollector(cfg)
	root := cfg.Root(auto)
	mode := modeFor(auto)
	verbosef(cmd, "assembling %s changelog from %s", mode, root)

	if watch {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		return watchChangelog(cmd, collector, root, mode, debounce)
	}

	doc, err := collector.Assemble(root, mode)
	if err != nil {
		return fmt.Errorf("assembling changelog: %w", err)
	}
	return changelog.Render(cmd.OutOrStdout(), doc)
}

// watchChangelog reprints the changelog until interrupted.
func watchChangelog(cmd *cobra.Command, collector *changelog.Collector, root string, mode changelog.Mode, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renders := 0
	return collector.Watch(ctx, root, mode, debounce, func(content string) {
		if renders > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		renders++
		fmt.Fprint(cmd.OutOrStdout(), content)
	})
}

// verbosef prints a progress line on stderr when --verbose is set.
func verbosef(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
