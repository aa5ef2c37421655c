package git

import (
	"context"
	"errors"
	"fmt"
)

// PublishOptions configures a Publisher.
type PublishOptions struct {
	// RemoteName is the remote to push to, usually "origin".
	RemoteName string
	// Branch is pushed to; empty means the checked out branch.
	Branch string
	// Credentials authenticate the push.
	Credentials Credentials
	// Author signs the commit.
	Author Signature
	// PersistRemoteURL writes the credential endpoint into the repository
	// config before pushing.
	PersistRemoteURL bool
	// NoPush stops after the commit.
	NoPush bool
}

// Publisher stages a directory, commits it and pushes the result.
// Steps run in order and the first failure aborts the rest.
type Publisher struct {
	repo *Repository
	opts PublishOptions
}

// NewPublisher creates a Publisher for repo.
func NewPublisher(repo *Repository, opts PublishOptions) *Publisher {
	if opts.RemoteName == "" {
		opts.RemoteName = "origin"
	}
	if opts.Credentials == nil {
		opts.Credentials = ConfiguredRemote{}
	}
	return &Publisher{repo: repo, opts: opts}
}

// ErrNothingStaged is returned when dir has no changes to commit.
var ErrNothingStaged = errors.New("no changes to commit")

// Publish stages dir, commits with message and pushes.
func (p *Publisher) Publish(ctx context.Context, dir, message string) error {
	staged, err := p.repo.StageDir(dir)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		return fmt.Errorf("staging %s: %w", dir, ErrNothingStaged)
	}

	if _, err := p.repo.Commit(message, p.opts.Author); err != nil {
		return err
	}

	if p.opts.NoPush {
		logDebug("[git] push skipped")
		return nil
	}

	if p.opts.PersistRemoteURL {
		if err := p.repo.PersistRemote(p.opts.RemoteName, p.opts.Credentials); err != nil {
			return fmt.Errorf("rewriting remote URL: %w", err)
		}
	}

	return p.repo.Push(ctx, p.opts.RemoteName, p.opts.Branch, p.opts.Credentials)
}
