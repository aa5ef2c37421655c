package config

import "path/filepath"

// ProjectConfigPath returns the path to the project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".chlog.yml"
}

// LegacyProjectConfigPath returns the path to the project-level JSON config file.
func LegacyProjectConfigPath() string {
	return ".chlog.json"
}

// OutputPath returns the persisted changelog path for the given root.
func (c *Configuration) OutputPath(root string) string {
	return filepath.Join(root, c.OutputFile)
}

// Root returns AutoChangelogDir when auto is set, ChangelogDir otherwise.
func (c *Configuration) Root(auto bool) string {
	if auto {
		return c.AutoChangelogDir
	}
	return c.ChangelogDir
}

// Redacted returns a copy with the access token masked, for display.
func (c *Configuration) Redacted() *Configuration {
	clone := *c
	if clone.GitHubToken != "" {
		clone.GitHubToken = "********"
	}
	return &clone
}
