package cli

import (
	"fmt"
	"os"

	"github.com/navsdk/chlog/internal/config"
	clierrors "github.com/navsdk/chlog/internal/errors"
	"github.com/navsdk/chlog/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the chlog configuration",
	Long: `Inspect or create the chlog configuration.

Configuration is loaded in this order, later sources winning:
  1. Built-in defaults
  2. Project config (.chlog.yml, or the legacy .chlog.json)
  3. CHLOG_<KEY> environment variables
  4. PR_NUMBER and GITHUB_TOKEN`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long:  "Print the effective configuration after all sources are merged. The access token is masked.",
	Example: `  chlog config show
  CHLOG_REPOSITORY=org/fork chlog config show`,
	Args: noArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented .chlog.yml with the defaults",
	Example: `  chlog config init
  chlog config init --force`,
	Args: noArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.GroupID = GroupInternal
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := configPath
	if path == "" {
		path = config.ProjectConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return clierrors.New(clierrors.Argument,
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it",
		)
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", path))
	return nil
}
