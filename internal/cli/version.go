package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/navsdk/chlog/internal/build"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for chlog",
	Example: `  # Show version info
  chlog version

  # Plain output (for scripts)
  chlog version --plain`,
	Args: noArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd)
			return
		}
		printPrettyVersion(cmd)
	},
}

func init() {
	versionCmd.GroupID = GroupInternal
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(cmd *cobra.Command) {
	info := build.Current()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "chlog %s\n", info.Version)
	fmt.Fprintf(out, "commit: %s\n", info.Commit)
	fmt.Fprintf(out, "built: %s\n", info.BuildDate)
	fmt.Fprintf(out, "go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "platform: %s\n", info.Platform)
}

func printPrettyVersion(cmd *cobra.Command) {
	info := build.Current()
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := info.Version
	if build.IsDevBuild() {
		version += dim(" (development build)")
	}
	fmt.Fprintf(out, "%s %s\n", bold("chlog"), version)
	for _, row := range [][2]string{
		{"commit:", info.Commit},
		{"built:", info.BuildDate},
		{"go:", info.GoVersion},
		{"platform:", info.Platform},
	} {
		fmt.Fprintf(out, "  %s %s\n", dim(fmt.Sprintf("%-9s", row[0])), row[1])
	}
}
