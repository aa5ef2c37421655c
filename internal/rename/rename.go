// Package rename normalizes newly added changelog fragments to <pr-number>.md.
//
// Each pull request contributes at most one new fragment per category. The
// Renamer enforces that: more than one pending fragment in a category is a
// policy violation and nothing in that category is renamed.
package rename

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// canonicalName matches fragment names that already start with a pull request number.
var canonicalName = regexp.MustCompile(`^[0-9]+\.md`)

var prNumberPattern = regexp.MustCompile(`^[0-9]+$`)

// DefaultCategories are the category directories watched for new fragments.
var DefaultCategories = []string{"bugfixes", "features"}

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for rename operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// PolicyViolationError reports more than one pending fragment in a category.
type PolicyViolationError struct {
	Dir     string
	Pending []string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("more than one new changelog file in %s: %s", e.Dir, strings.Join(e.Pending, ", "))
}

// IsCanonical reports whether name is already in <digits>.md form.
func IsCanonical(name string) bool {
	return canonicalName.MatchString(name)
}

// IsCandidate reports whether name is a fragment waiting to be renamed:
// a visible .md file that is not canonical.
func IsCandidate(name string) bool {
	if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".md") {
		return false
	}
	return !IsCanonical(name)
}

// Publisher records a directory's changes in version control and ships them.
type Publisher interface {
	Publish(ctx context.Context, dir, message string) error
}

// Options configures a Renamer.
type Options struct {
	// PRNumber is the pull request number the pending fragment is renamed to.
	PRNumber string
	// Root holds the category directories.
	Root string
	// Categories overrides DefaultCategories.
	Categories []string
	// CommitMessage is used when at least one file was renamed.
	CommitMessage string
}

// Renamer renames pending fragments and publishes the result.
type Renamer struct {
	opts      Options
	publisher Publisher
}

// NewRenamer creates a Renamer. A nil publisher renames without committing.
func NewRenamer(opts Options, publisher Publisher) (*Renamer, error) {
	if opts.PRNumber == "" {
		return nil, fmt.Errorf("pull request number is required")
	}
	if !prNumberPattern.MatchString(opts.PRNumber) {
		return nil, fmt.Errorf("pull request number %q is not numeric", opts.PRNumber)
	}
	if len(opts.Categories) == 0 {
		opts.Categories = DefaultCategories
	}
	return &Renamer{opts: opts, publisher: publisher}, nil
}

// RenameFiles renames the single pending fragment in dir to <pr>.md and
// returns the number of renamed files (0 or 1).
func (r *Renamer) RenameFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", dir, err)
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsCandidate(entry.Name()) {
			logDebug("[rename] %s: keeping %s", dir, entry.Name())
			continue
		}
		pending = append(pending, entry.Name())
	}

	switch len(pending) {
	case 0:
		return 0, nil
	case 1:
	default:
		return 0, &PolicyViolationError{Dir: dir, Pending: pending}
	}

	from := filepath.Join(dir, pending[0])
	to := filepath.Join(dir, r.opts.PRNumber+".md")
	if _, err := os.Lstat(to); err == nil {
		return 0, fmt.Errorf("cannot rename %s: %s already exists", from, to)
	}
	if err := os.Rename(from, to); err != nil {
		return 0, fmt.Errorf("renaming %s: %w", from, err)
	}
	logDebug("[rename] %s -> %s", from, to)
	return 1, nil
}

// Result describes a Run.
type Result struct {
	Renamed   int
	Published bool
}

// Run renames pending fragments in every category under Root and, when
// anything was renamed, publishes Root with CommitMessage. Renames already
// done are left in place when a later category or the publish fails.
func (r *Renamer) Run(ctx context.Context) (Result, error) {
	var res Result
	for _, category := range r.opts.Categories {
		n, err := r.RenameFiles(filepath.Join(r.opts.Root, category))
		if err != nil {
			return res, err
		}
		res.Renamed += n
	}

	if res.Renamed == 0 || r.publisher == nil {
		return res, nil
	}
	if err := r.publisher.Publish(ctx, r.opts.Root, r.opts.CommitMessage); err != nil {
		return res, fmt.Errorf("publishing renamed fragments: %w", err)
	}
	res.Published = true
	return res, nil
}
