package changelog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce collapses bursts of editor writes into one render.
const DefaultWatchDebounce = 150 * time.Millisecond

// Watch renders the changelog under root, then renders it again after every
// change to a category directory, until ctx is cancelled. onRender receives
// each rendered document.
func (c *Collector) Watch(ctx context.Context, root string, mode Mode, debounce time.Duration, onRender func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	for _, category := range mode.Categories() {
		addCategoryWatch(watcher, filepath.Join(root, string(category)))
	}

	render := func() error {
		out, err := c.AssembleString(root, mode)
		if err != nil {
			return err
		}
		onRender(out)
		return nil
	}
	if err := render(); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isCategoryDir(root, event.Name, mode) {
				addCategoryWatch(watcher, event.Name)
			}
			logDebug("[changelog] watch event %s", event)
			pending = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", root, err)
		case <-pending:
			pending = nil
			if err := render(); err != nil {
				return err
			}
		}
	}
}

// addCategoryWatch watches dir if it exists. Missing directories are picked up
// later through the Create event on root.
func addCategoryWatch(watcher *fsnotify.Watcher, dir string) {
	if err := watcher.Add(dir); err != nil {
		logDebug("[changelog] not watching %s: %v", dir, err)
	}
}

func isCategoryDir(root, path string, mode Mode) bool {
	if filepath.Dir(path) != filepath.Clean(root) {
		return false
	}
	for _, category := range mode.Categories() {
		if filepath.Base(path) == string(category) {
			return true
		}
	}
	return false
}
