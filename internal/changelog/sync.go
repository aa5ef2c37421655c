package changelog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Publisher records a directory's changes in version control and ships them.
type Publisher interface {
	Publish(ctx context.Context, dir, message string) error
}

// SyncResult describes what Sync did.
type SyncResult struct {
	// Path is the persisted changelog file.
	Path string
	// Changed is false when the file already matched and nothing was written.
	Changed bool
	// Content is the freshly assembled changelog.
	Content string
}

// Syncer keeps a persisted changelog file in step with its fragments.
type Syncer struct {
	collector *Collector
	publisher Publisher
	message   string
}

// NewSyncer creates a Syncer. A nil publisher writes the file without committing.
func NewSyncer(collector *Collector, publisher Publisher, message string) *Syncer {
	return &Syncer{
		collector: collector,
		publisher: publisher,
		message:   message,
	}
}

// Check assembles the changelog under root and compares it byte for byte
// with the file at path. A missing file counts as empty.
func (s *Syncer) Check(root, path string, mode Mode) (SyncResult, error) {
	content, err := s.collector.AssembleString(root, mode)
	if err != nil {
		return SyncResult{}, err
	}

	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return SyncResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return SyncResult{
		Path:    path,
		Changed: !bytes.Equal(current, []byte(content)),
		Content: content,
	}, nil
}

// Sync rewrites the file at path when the assembled changelog differs from it,
// then publishes the root directory. Unchanged content is a no-op: no write,
// no commit, no push.
func (s *Syncer) Sync(ctx context.Context, root, path string, mode Mode) (SyncResult, error) {
	result, err := s.Check(root, path, mode)
	if err != nil {
		return result, err
	}
	if !result.Changed {
		logDebug("[changelog] %s is up to date", path)
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(result.Content), 0o644); err != nil {
		return result, fmt.Errorf("writing %s: %w", path, err)
	}
	logDebug("[changelog] wrote %s (%d bytes)", path, len(result.Content))

	if s.publisher == nil {
		return result, nil
	}
	if err := s.publisher.Publish(ctx, filepath.Dir(path), s.message); err != nil {
		return result, fmt.Errorf("publishing changelog: %w", err)
	}
	return result, nil
}
