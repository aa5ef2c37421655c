package config

// GetDefaultConfigTemplate returns a fully commented config template
// for .chlog.yml.
func GetDefaultConfigTemplate() string {
	return `# chlog configuration
# Every key can be overridden with a CHLOG_<KEY> environment variable.

# Fragment layout
changelog_dir: changelog/unreleased                             # bugfixes/ features/ issues/ other/
auto_changelog_dir: libnavui-androidauto/changelog/unreleased   # used by --auto (bugfixes/ features/)
output_file: CHANGELOG.md                                       # persisted file inside the root
ensure_trailing_newline: true                                   # terminate fragments lacking a final newline

# Backlinks and pushing
repository: mapbox/mapbox-navigation-android                    # owner/name used in pull request links
push_repository: ""                                             # owner/name pushed to (empty = repository)
remote_name: origin
push_branch: ""                                                 # branch pushed to (empty = checked out branch)
persist_remote_url: false                                       # write the token URL into .git/config before pushing

# Commits
rename_commit_message: Rename changelog files
sync_commit_message: Update unreleased changelog
author_name: github-actions[bot]
author_email: 41898282+github-actions[bot]@users.noreply.github.com
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_dir":      "changelog/unreleased",
		"auto_changelog_dir": "libnavui-androidauto/changelog/unreleased",
		"output_file":        "CHANGELOG.md",
		"ensure_trailing_newline": true,
		"repository":              "mapbox/mapbox-navigation-android",
		"push_repository":         "",
		"remote_name":             "origin",
		"push_branch":             "",
		"persist_remote_url":      false,
		"rename_commit_message":   "Rename changelog files",
		"sync_commit_message":     "Update unreleased changelog",
		"author_name":             "github-actions[bot]",
		"author_email":            "41898282+github-actions[bot]@users.noreply.github.com",
		"pr_number":               "",
		"github_token":            "",
	}
}
