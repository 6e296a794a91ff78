package watch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

// DefaultIgnorePatterns keeps build churn out of the debouncer.
var DefaultIgnorePatterns = []string{
	".git/**",
	"**/.git/**",
	"node_modules/**",
	"**/node_modules/**",
	"**/*.tmp",
	"**/*.log",
}

// Watcher monitors workspace roots recursively and reports change paths.
// New subdirectories are added to the watch as they appear; ignored paths
// never reach the handler.
type Watcher struct {
	fsw     *fsnotify.Watcher
	ignores []glob.Glob
	handler func(path string)
	log     *logrus.Entry
	done    chan struct{}
}

// NewWatcher creates a watcher over the given roots. handler is invoked
// for every surviving event path; callers typically point it at a
// Debouncer.
func NewWatcher(roots []string, ignorePatterns []string, handler func(path string), log *logrus.Entry) (*Watcher, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	ignores := make([]glob.Glob, 0, len(ignorePatterns))
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", pattern, err)
		}
		ignores = append(ignores, g)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		ignores: ignores,
		handler: handler,
		log:     log.WithField("component", "watcher"),
		done:    make(chan struct{}),
	}

	for _, root := range roots {
		if err := w.watchRecursive(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// watchRecursive registers root and every non-ignored subdirectory.
func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.WithError(err).WithField("path", path).Warn("Skipping unwatchable entry")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.isIgnored(relTo(root, path)) || d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.WithError(err).WithField("dir", path).Warn("Could not watch directory")
		}
		return nil
	})
}

// Run consumes fsnotify events until Stop is called. Directories created
// while running are added to the watch so their contents are covered too.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("Watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if w.isIgnored(filepath.ToSlash(path)) || strings.Contains(path, string(filepath.Separator)+".git"+string(filepath.Separator)) {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		// A new directory needs its own watch before events inside it
		// can be seen.
		if err := w.watchRecursive(path); err != nil {
			w.log.WithError(err).WithField("path", path).Debug("Could not extend watch to new path")
		}
	}

	w.log.WithFields(logrus.Fields{
		"path": path,
		"op":   event.Op.String(),
	}).Debug("Filesystem event")

	if w.handler != nil {
		w.handler(path)
	}
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.fsw.Close()
}

// isIgnored matches a slash-separated path against the ignore globs.
func (w *Watcher) isIgnored(path string) bool {
	for _, g := range w.ignores {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// relTo returns path relative to root in slash form, falling back to the
// absolute path when it is not nested under root.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
