package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Credentials turns the configured remote URL into the endpoint and
// authentication used for a push.
type Credentials interface {
	Endpoint(remoteURL string) (string, transport.AuthMethod, error)
}

// TokenCredentials pushes over HTTPS with a short-lived access token, in the
// form GitHub Actions accepts for its installation tokens.
type TokenCredentials struct {
	Token string
	// Repository is the owner/name slug pushed to.
	Repository string
	// Host defaults to github.com.
	Host string
}

// Endpoint ignores the configured URL and returns the token URL.
func (c TokenCredentials) Endpoint(string) (string, transport.AuthMethod, error) {
	if c.Token == "" {
		return "", nil, errors.New("access token is empty")
	}
	if strings.Count(c.Repository, "/") != 1 {
		return "", nil, fmt.Errorf("repository %q is not an owner/name slug", c.Repository)
	}
	host := c.Host
	if host == "" {
		host = "github.com"
	}
	endpoint := fmt.Sprintf("https://x-access-token:%s@%s/%s", c.Token, host, c.Repository)
	return endpoint, &http.BasicAuth{Username: "x-access-token", Password: c.Token}, nil
}

// ConfiguredRemote pushes to the remote's own URL. SSH remotes use the SSH
// agent when one is running; other URLs push without explicit auth.
type ConfiguredRemote struct{}

// Endpoint returns remoteURL unchanged.
func (ConfiguredRemote) Endpoint(remoteURL string) (string, transport.AuthMethod, error) {
	return remoteURL, getAuthForURL(remoteURL), nil
}

// getAuthForURL returns SSH agent auth for SSH URLs, nil otherwise.
func getAuthForURL(url string) transport.AuthMethod {
	if !isSSHURL(url) || !isSSHAgentAvailable() {
		return nil
	}
	auth, err := ssh.NewSSHAgentAuth("git")
	if err != nil {
		logDebug("[git] SSH agent auth failed: %v", err)
		return nil
	}
	return auth
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// isSSHAgentAvailable returns true only if SSH_AUTH_SOCK is set and non-empty.
func isSSHAgentAvailable() bool {
	return strings.TrimSpace(os.Getenv("SSH_AUTH_SOCK")) != ""
}

// RedactURL hides any password embedded in a URL so it can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

// RewriteRemote returns configText with every "url = from" entry replaced by
// "url = to". Other lines, indentation and comments are preserved.
func RewriteRemote(configText, from, to string) string {
	if from == "" {
		return configText
	}
	lines := strings.SplitAfter(configText, "\n")
	for i, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		ending := line[len(body):]

		key, value, ok := strings.Cut(body, "=")
		if !ok || strings.TrimSpace(key) != "url" || strings.TrimSpace(value) != from {
			continue
		}
		indent := key[:len(key)-len(strings.TrimLeft(key, " \t"))]
		lines[i] = indent + "url = " + to + ending
	}
	return strings.Join(lines, "")
}

// RemoteURL returns the first URL of the named remote.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("looking up remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}

// PersistRemote writes the credential endpoint into the repository's config
// file as the URL of the named remote.
func (r *Repository) PersistRemote(name string, creds Credentials) error {
	current, err := r.RemoteURL(name)
	if err != nil {
		return err
	}
	endpoint, _, err := creds.Endpoint(current)
	if err != nil {
		return fmt.Errorf("resolving push endpoint: %w", err)
	}

	path, err := r.configPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(RewriteRemote(string(data), current, endpoint)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logDebug("[git] remote %s now points at %s", name, RedactURL(endpoint))
	return nil
}

func (r *Repository) configPath() (string, error) {
	storage, ok := r.repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", errors.New("repository is not stored on disk")
	}
	return filepath.Join(storage.Filesystem().Root(), "config"), nil
}

// PushError reports a push the remote refused or that failed in transit.
type PushError struct {
	Remote string
	Err    error
}

func (e *PushError) Error() string {
	return fmt.Sprintf("pushing to %s: %v", e.Remote, e.Err)
}

func (e *PushError) Unwrap() error {
	return e.Err
}

// Push pushes branch to the named remote. An empty branch means the current
// one. When HEAD is not on branch, the local branch is first moved to HEAD so
// the commit just made is what lands on the remote. An up-to-date remote is
// not an error.
func (r *Repository) Push(ctx context.Context, remoteName, branch string, creds Credentials) error {
	if branch == "" {
		current, err := r.CurrentBranch()
		if err != nil {
			return err
		}
		if current == "" {
			return errors.New("HEAD is detached; set push_branch to the branch to push")
		}
		branch = current
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD reference: %w", err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	if head.Name() != ref {
		if err := r.repo.Storer.SetReference(plumbing.NewHashReference(ref, head.Hash())); err != nil {
			return fmt.Errorf("updating %s: %w", ref, err)
		}
	}

	remoteURL, err := r.RemoteURL(remoteName)
	if err != nil {
		return err
	}
	endpoint, auth, err := creds.Endpoint(remoteURL)
	if err != nil {
		return fmt.Errorf("resolving push endpoint: %w", err)
	}

	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))
	logDebug("[git] pushing %s to %s (%s)", refSpec, remoteName, RedactURL(endpoint))

	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		RemoteURL:  endpoint,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		logDebug("[git] %s already up to date", remoteName)
		return nil
	}
	if err != nil {
		return &PushError{Remote: remoteName, Err: err}
	}
	return nil
}
