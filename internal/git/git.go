// Package git records changelog updates with go-git: it stages a directory,
// commits it, and pushes the current branch to a remote. Authentication for the
// push comes from a Credentials value supplied by the caller, so nothing here
// reads tokens from the environment.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository is an opened working tree.
type Repository struct {
	repo *git.Repository
	root string
}

// Open opens the git repository containing path, walking up to find .git.
// If path is empty, the current working directory is used.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()
	logDebug("[git] repository root %s", root)
	return &Repository{repo: repo, root: root}, nil
}

// Root returns the absolute path of the working tree.
func (r *Repository) Root() string {
	return r.root
}

// CurrentBranch returns the checked out branch name, or "" on a detached HEAD.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD state")
		return "", nil
	}
	return head.Name().Short(), nil
}

// relPath converts dir into a slash-separated path relative to the worktree root.
func (r *Repository) relPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	root := r.root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s against %s: %w", dir, root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository %s", dir, r.root)
	}
	return filepath.ToSlash(rel), nil
}

// StageDir stages every added, modified and deleted file under dir and
// returns the staged paths.
func (r *Repository) StageDir(dir string) ([]string, error) {
	prefix, err := r.relPath(dir)
	if err != nil {
		return nil, err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	var staged []string
	for path, fs := range status {
		if !underDir(path, prefix) || fs.Worktree == git.Unmodified {
			continue
		}
		if fs.Worktree == git.Deleted {
			if _, err := wt.Remove(path); err != nil {
				return nil, fmt.Errorf("staging removal of %s: %w", path, err)
			}
		} else if _, err := wt.Add(path); err != nil {
			return nil, fmt.Errorf("staging %s: %w", path, err)
		}
		staged = append(staged, path)
	}

	logDebug("[git] staged %d paths under %s", len(staged), prefix)
	return staged, nil
}

func underDir(path, dir string) bool {
	if dir == "." || dir == "" {
		return true
	}
	return path == dir || strings.HasPrefix(path, dir+"/")
}

// Signature identifies the commit author.
type Signature struct {
	Name  string
	Email string
}

// Commit records the index with message and returns the new commit hash.
func (r *Repository) Commit(message string, author Signature) (plumbing.Hash, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting worktree: %w", err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing %q: %w", message, err)
	}

	logDebug("[git] committed %s %q", hash, message)
	return hash, nil
}
