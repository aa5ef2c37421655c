package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

var testAuthor = Signature{Name: "Test", Email: "test@test.com"}

// initRepo creates a repository with files committed and returns it opened.
func initRepo(t *testing.T, files map[string]string) *Repository {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	if len(files) == 0 {
		files = map[string]string{"README.md": "# Test\n"}
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(dir, rel), content)
		_, err = wt.Add(filepath.ToSlash(rel))
		require.NoError(t, err)
	}
	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)
	return r
}

// addBareRemote creates a bare repository and registers it as remote name.
func addBareRemote(t *testing.T, r *Repository, name string) *git.Repository {
	t.Helper()
	bareDir := t.TempDir()
	bare, err := git.PlainInit(bareDir, true)
	require.NoError(t, err)

	_, err = r.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{bareDir}})
	require.NoError(t, err)
	return bare
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// headFiles lists the paths in the HEAD commit tree.
func headFiles(t *testing.T, r *Repository) []string {
	t.Helper()
	head, err := r.repo.Head()
	require.NoError(t, err)
	commit, err := r.repo.CommitObject(head.Hash())
	require.NoError(t, err)
	tree, err := commit.Tree()
	require.NoError(t, err)

	var paths []string
	require.NoError(t, tree.Files().ForEach(func(f *object.File) error {
		paths = append(paths, f.Name)
		return nil
	}))
	return paths
}
