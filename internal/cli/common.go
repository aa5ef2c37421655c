package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/navsdk/chlog/internal/changelog"
	"github.com/navsdk/chlog/internal/config"
	clierrors "github.com/navsdk/chlog/internal/errors"
	"github.com/navsdk/chlog/internal/git"
	"github.com/spf13/cobra"
)

// loadConfig loads configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Configuration,
			fmt.Sprintf("Check %s and the %s* environment variables", config.ProjectConfigPath(), config.EnvPrefix))
	}
	return cfg, nil
}

func newCollector(cfg *config.Configuration) *changelog.Collector {
	return changelog.NewCollector(changelog.Options{
		Repository:            cfg.Repository,
		EnsureTrailingNewline: cfg.EnsureTrailingNewline,
	})
}

func modeFor(auto bool) changelog.Mode {
	if auto {
		return changelog.ModeAuto
	}
	return changelog.ModeStandard
}

// openRepository opens the repository holding dir.
func openRepository(dir string) (*git.Repository, error) {
	repo, err := git.Open(dir)
	if err != nil {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			abs = dir
		}
		return nil, clierrors.NotARepository(abs, err)
	}
	return repo, nil
}

// newPublisher builds the commit-and-push step shared by sync and rename.
// The access token is only required when the result is pushed.
func newPublisher(cfg *config.Configuration, repo *git.Repository, noPush bool) (*git.Publisher, error) {
	if !noPush && cfg.GitHubToken == "" {
		return nil, clierrors.MissingEnvironment("GITHUB_TOKEN", "push access to "+cfg.PushRepository)
	}

	return git.NewPublisher(repo, git.PublishOptions{
		RemoteName: cfg.RemoteName,
		Branch:     cfg.PushBranch,
		Credentials: git.TokenCredentials{
			Token:      cfg.GitHubToken,
			Repository: cfg.PushRepository,
		},
		Author: git.Signature{
			Name:  cfg.AuthorName,
			Email: cfg.AuthorEmail,
		},
		PersistRemoteURL: cfg.PersistRemoteURL,
		NoPush:           noPush,
	}), nil
}

// noArgs rejects positional arguments with an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return clierrors.New(clierrors.Argument,
			fmt.Sprintf("%s takes no arguments, got %q", cmd.CommandPath(), args),
		).WithUsage(cmd.UseLine())
	}
	return nil
}

// isFlagError reports whether err came from cobra's own command lookup.
func isFlagError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

func flagError(cmd *cobra.Command, err error) error {
	return clierrors.New(clierrors.Argument, err.Error(),
		fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()),
	).WithUsage(cmd.UseLine()).WithCause(err)
}
