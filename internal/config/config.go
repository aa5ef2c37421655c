// Package config provides layered configuration for chlog using koanf.
// Configuration is loaded with priority: PR_NUMBER/GITHUB_TOKEN > CHLOG_* environment
// variables > project config (.chlog.yml or legacy .chlog.json) > defaults.
// The resulting Configuration is passed explicitly into the assembler, renamer and
// git components; none of them read the process environment on their own.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the chlog CLI tool configuration
type Configuration struct {
	// ChangelogDir is the root holding the bugfixes/features/issues/other
	// fragment directories and the persisted CHANGELOG.md.
	ChangelogDir string `koanf:"changelog_dir" yaml:"changelog_dir" validate:"required"`
	// AutoChangelogDir is the product-variant root used by --auto.
	AutoChangelogDir string `koanf:"auto_changelog_dir" yaml:"auto_changelog_dir" validate:"required"`
	// OutputFile is the persisted changelog file name inside the root.
	OutputFile string `koanf:"output_file" yaml:"output_file" validate:"required"`

	// Repository is the owner/name slug used for pull request backlinks.
	Repository string `koanf:"repository" yaml:"repository" validate:"required,contains=/"`
	// PushRepository is the owner/name slug pushed to with the access token.
	// Defaults to Repository when empty.
	PushRepository string `koanf:"push_repository" yaml:"push_repository"`
	// RemoteName is the remote pushed to.
	RemoteName string `koanf:"remote_name" yaml:"remote_name" validate:"required"`
	// PushBranch is the branch pushed to. Empty means the checked out branch,
	// which fails on a detached HEAD.
	PushBranch string `koanf:"push_branch" yaml:"push_branch"`
	// PersistRemoteURL rewrites the remote URL in .git/config before pushing
	// instead of passing the authenticated URL to the push call only.
	PersistRemoteURL bool `koanf:"persist_remote_url" yaml:"persist_remote_url"`

	// EnsureTrailingNewline appends a newline to fragments that lack one
	// before concatenation.
	EnsureTrailingNewline bool `koanf:"ensure_trailing_newline" yaml:"ensure_trailing_newline"`

	RenameCommitMessage string `koanf:"rename_commit_message" yaml:"rename_commit_message" validate:"required"`
	SyncCommitMessage   string `koanf:"sync_commit_message" yaml:"sync_commit_message" validate:"required"`
	AuthorName          string `koanf:"author_name" yaml:"author_name" validate:"required"`
	AuthorEmail         string `koanf:"author_email" yaml:"author_email" validate:"required"`

	// PRNumber and GitHubToken come from PR_NUMBER and GITHUB_TOKEN.
	PRNumber    string `koanf:"pr_number" yaml:"pr_number" validate:"omitempty,numeric"`
	GitHubToken string `koanf:"github_token" yaml:"github_token"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .chlog.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from project and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project config, YAML preferred. A legacy JSON file is
// read only when no YAML file exists, with a warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	if fileExists(yamlPath) {
		if err := loadYAMLConfig(k, yamlPath); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		}
		return nil
	}

	if customPath != "" {
		return fmt.Errorf("config file %s does not exist", customPath)
	}

	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: using JSON config at %s; rename it to %s and convert to YAML\n\n", legacyPath, ProjectConfigPath())
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads CHLOG_* overrides, then the CI variables.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if err := k.Load(env.Provider("", ".", ciEnvTransform), nil); err != nil {
		return fmt.Errorf("failed to load CI environment: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals the merged config and validates it.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.PRNumber = strings.TrimSpace(cfg.PRNumber)
	cfg.GitHubToken = strings.TrimSpace(cfg.GitHubToken)
	if cfg.PushRepository == "" {
		cfg.PushRepository = cfg.Repository
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// EnvPrefix is the prefix for environment overrides of config keys.
const EnvPrefix = "CHLOG_"

// envTransform converts environment variable names to config keys
// Example: CHLOG_CHANGELOG_DIR -> changelog_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// ciEnvTransform maps the variables set by the CI workflow. Anything else is dropped.
func ciEnvTransform(s string) string {
	switch s {
	case "PR_NUMBER":
		return "pr_number"
	case "GITHUB_TOKEN":
		return "github_token"
	default:
		return ""
	}
}
