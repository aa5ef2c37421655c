package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRepository is the owner/name slug used for backlinks when none is configured.
const DefaultRepository = "mapbox/mapbox-navigation-android"

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for fragment collection.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Options configures a Collector.
type Options struct {
	// Repository is the owner/name slug pull request links point at.
	Repository string
	// EnsureTrailingNewline terminates fragments lacking a final newline
	// before they are concatenated.
	EnsureTrailingNewline bool
}

// Collector reads fragment directories and assembles changelog documents.
type Collector struct {
	opts Options
}

// NewCollector creates a Collector. An empty Repository falls back to DefaultRepository.
func NewCollector(opts Options) *Collector {
	if opts.Repository == "" {
		opts.Repository = DefaultRepository
	}
	return &Collector{opts: opts}
}

// ReadFragments returns the fragments in dir sorted by file name.
// Subdirectories and dot-files are skipped. A missing dir yields no fragments.
func (c *Collector) ReadFragments(dir string) ([]Fragment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logDebug("[changelog] %s does not exist, skipping", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("listing fragments in %s: %w", dir, err)
	}

	fragments := make([]Fragment, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading fragment %s: %w", entry.Name(), err)
		}
		id, _, _ := strings.Cut(entry.Name(), ".")
		fragments = append(fragments, Fragment{
			ID:      id,
			Name:    entry.Name(),
			Content: normalizeNewlines(string(data)),
		})
	}

	logDebug("[changelog] %s: %d fragments", dir, len(fragments))
	return fragments, nil
}

// Collect concatenates the fragments of the category directory dir.
// The category is the directory's base name; bugfixes and features fragments
// get a backlink on every line starting with "- ".
// The result has surrounding whitespace trimmed.
func (c *Collector) Collect(dir string) (string, error) {
	fragments, err := c.ReadFragments(dir)
	if err != nil {
		return "", err
	}

	category := Category(filepath.Base(filepath.Clean(dir)))

	var b strings.Builder
	for _, f := range fragments {
		content := f.Content
		if category.Backlinks() {
			content = AddBacklinks(content, c.BacklinkSuffix(f.ID))
		}
		if c.opts.EnsureTrailingNewline && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		b.WriteString(content)
	}

	return strings.TrimSpace(b.String()), nil
}

// PullRequestURL returns the web URL of pull request id.
func (c *Collector) PullRequestURL(id string) string {
	return fmt.Sprintf("https://github.com/%s/pull/%s", c.opts.Repository, id)
}

// BacklinkSuffix returns the text appended to a bullet line, including its newline.
func (c *Collector) BacklinkSuffix(id string) string {
	return fmt.Sprintf(" [#%s](%s)\n", id, c.PullRequestURL(id))
}

// AddBacklinks finds every line of content that starts with "- " and replaces
// each occurrence of that line, anywhere in content, with the line minus its
// newline followed by suffix. An indented line repeating a bullet's text is
// therefore linked too.
func AddBacklinks(content, suffix string) string {
	for _, line := range strings.SplitAfter(content, "\n") {
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		content = strings.ReplaceAll(content, line, strings.TrimSuffix(line, "\n")+suffix)
	}
	return content
}

// normalizeNewlines turns CRLF and lone CR line endings into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
