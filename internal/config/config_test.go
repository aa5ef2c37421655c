package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray .chlog.yml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearCIEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PR_NUMBER", "")
	t.Setenv("GITHUB_TOKEN", "")
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	clearCIEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "changelog/unreleased", cfg.ChangelogDir)
	assert.Equal(t, "libnavui-androidauto/changelog/unreleased", cfg.AutoChangelogDir)
	assert.Equal(t, "CHANGELOG.md", cfg.OutputFile)
	assert.Equal(t, "mapbox/mapbox-navigation-android", cfg.Repository)
	assert.Equal(t, cfg.Repository, cfg.PushRepository)
	assert.Equal(t, "origin", cfg.RemoteName)
	assert.True(t, cfg.EnsureTrailingNewline)
	assert.False(t, cfg.PersistRemoteURL)
	assert.Equal(t, "Rename changelog files", cfg.RenameCommitMessage)
	assert.Empty(t, cfg.PRNumber)
	assert.Empty(t, cfg.GitHubToken)
}

func TestLoad_Priority(t *testing.T) {
	dir := chdirTemp(t)
	clearCIEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".chlog.yml"), []byte(`
repository: acme/widgets
changelog_dir: docs/changes
ensure_trailing_newline: false
`), 0o644))
	t.Setenv("CHLOG_CHANGELOG_DIR", "env/changes")
	t.Setenv("PR_NUMBER", " 77 ")
	t.Setenv("GITHUB_TOKEN", "ghs_secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "acme/widgets", cfg.Repository)
	assert.Equal(t, "acme/widgets", cfg.PushRepository)
	assert.Equal(t, "env/changes", cfg.ChangelogDir, "environment overrides project config")
	assert.False(t, cfg.EnsureTrailingNewline)
	assert.Equal(t, "77", cfg.PRNumber)
	assert.Equal(t, "ghs_secret", cfg.GitHubToken)
}

func TestLoad_EnvBool(t *testing.T) {
	chdirTemp(t)
	clearCIEnv(t)
	t.Setenv("CHLOG_PERSIST_REMOTE_URL", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.PersistRemoteURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		yaml    string
		env     map[string]string
		wantErr string
	}{
		"invalid yaml": {
			yaml:    "repository: [unclosed\n",
			wantErr: "validating YAML syntax",
		},
		"repository without slash": {
			yaml:    "repository: widgets\n",
			wantErr: "repository",
		},
		"non numeric pull request": {
			env:     map[string]string{"PR_NUMBER": "abc"},
			wantErr: "pr_number",
		},
		"empty commit message": {
			yaml:    "rename_commit_message: \"\"\n",
			wantErr: "rename_commit_message",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := chdirTemp(t)
			clearCIEnv(t)
			if tt.yaml != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".chlog.yml"), []byte(tt.yaml), 0o644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingCustomPath(t *testing.T) {
	chdirTemp(t)
	clearCIEnv(t)

	_, err := Load("nope.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoad_LegacyJSON(t *testing.T) {
	dir := chdirTemp(t)
	clearCIEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".chlog.json"), []byte(`{"repository":"acme/legacy"}`), 0o644))

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings})
	require.NoError(t, err)
	assert.Equal(t, "acme/legacy", cfg.Repository)
	assert.Contains(t, warnings.String(), "JSON config")
}

func TestConfiguration_Root(t *testing.T) {
	cfg := &Configuration{ChangelogDir: "a", AutoChangelogDir: "b", OutputFile: "CHANGELOG.md"}

	assert.Equal(t, "a", cfg.Root(false))
	assert.Equal(t, "b", cfg.Root(true))
	assert.Equal(t, filepath.Join("a", "CHANGELOG.md"), cfg.OutputPath(cfg.Root(false)))
}

func TestGetDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	err := ValidateYAMLSyntaxFromBytes([]byte(GetDefaultConfigTemplate()), "template")
	assert.NoError(t, err)
}

func TestRedacted(t *testing.T) {
	tests := map[string]struct {
		token string
		want  string
	}{
		"token masked":      {token: "ghs_secret", want: "********"},
		"empty token stays": {token: "", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Configuration{GitHubToken: tt.token, Repository: "org/repo"}

			redacted := cfg.Redacted()

			assert.Equal(t, tt.want, redacted.GitHubToken)
			assert.Equal(t, "org/repo", redacted.Repository)
			assert.Equal(t, tt.token, cfg.GitHubToken, "original must not change")
		})
	}
}
