// Package selection implements the explicit selection store: the durable
// sets of user-chosen file and folder paths that are the ground truth for
// what belongs in the context.
package selection

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ctxtree/ctxtree/pkg/workspace"
)

// ResourceKind distinguishes file and folder targets of a mutation.
type ResourceKind int

const (
	KindFile ResourceKind = iota
	KindFolder
)

func (k ResourceKind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Store holds the two explicit path sets. All mutations go through Add,
// Remove and Clear; each completed mutation emits exactly one change
// notification and rewrites the persisted snapshot.
type Store struct {
	mu        sync.Mutex
	roots     *workspace.Roots
	files     map[string]bool
	folders   map[string]bool
	listeners []func()
	persister *Persister
	log       *logrus.Entry
}

// NewStore creates a store scoped to the given workspace roots. persister
// may be nil for an in-memory store (tests, dry runs).
func NewStore(roots *workspace.Roots, persister *Persister, log *logrus.Entry) *Store {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		roots:     roots,
		files:     make(map[string]bool),
		folders:   make(map[string]bool),
		persister: persister,
		log:       log.WithField("component", "selection"),
	}
}

// OnChange registers a listener invoked once after every completed
// mutation. Listeners are called synchronously, outside the store lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Add inserts path into the selection. For KindFolder the folder is walked
// synchronously and every descendant discovered right now is inserted too:
// files into the file set, subfolders into the folder set. A descendant
// created after the add is not a member until the folder is re-added.
// Paths outside every workspace root are rejected with ErrOutOfWorkspace
// and the store is left untouched.
func (s *Store) Add(path string, kind ResourceKind) error {
	canonical, err := s.roots.Canonicalize(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	switch kind {
	case KindFolder:
		s.folders[canonical] = true
		s.snapshotFolder(canonical)
	default:
		s.files[canonical] = true
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"path": canonical,
		"kind": kind.String(),
	}).Debug("Added resource to selection")

	s.afterMutation()
	return nil
}

// snapshotFolder walks folder and records its current descendants. A
// directory that cannot be read contributes nothing; the rest of the walk
// continues. Caller holds the lock.
func (s *Store) snapshotFolder(folder string) {
	err := filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.WithError(err).WithField("path", p).Warn("Skipping unreadable entry during folder add")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == folder {
			return nil
		}
		if d.IsDir() {
			s.folders[p] = true
		} else {
			s.files[p] = true
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("folder", folder).Warn("Folder walk ended early")
	}
}

// Remove deletes path from the selection. If path is in the folder set,
// every stored path nested under it is removed from both sets as well.
func (s *Store) Remove(path string) error {
	canonical, err := s.roots.Canonicalize(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.folders[canonical] {
		delete(s.folders, canonical)
		prefix := canonical + string(filepath.Separator)
		for f := range s.files {
			if len(f) > len(prefix) && f[:len(prefix)] == prefix {
				delete(s.files, f)
			}
		}
		for f := range s.folders {
			if len(f) > len(prefix) && f[:len(prefix)] == prefix {
				delete(s.folders, f)
			}
		}
	} else {
		delete(s.files, canonical)
	}
	s.mu.Unlock()

	s.log.WithField("path", canonical).Debug("Removed resource from selection")

	s.afterMutation()
	return nil
}

// Clear empties both sets.
func (s *Store) Clear() {
	s.mu.Lock()
	s.files = make(map[string]bool)
	s.folders = make(map[string]bool)
	s.mu.Unlock()

	s.log.Debug("Cleared selection")
	s.afterMutation()
}

// Contains reports membership of path in the set matching kind.
func (s *Store) Contains(path string, kind ResourceKind) bool {
	canonical, err := s.roots.Canonicalize(path)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == KindFolder {
		return s.folders[canonical]
	}
	return s.files[canonical]
}

// Files returns a sorted copy of the explicit file set.
func (s *Store) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.files)
}

// Folders returns a sorted copy of the explicit folder set.
func (s *Store) Folders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.folders)
}

// FileSet returns a copy of the file set as a lookup map.
func (s *Store) FileSet() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySet(s.files)
}

// FolderSet returns a copy of the folder set as a lookup map.
func (s *Store) FolderSet() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySet(s.folders)
}

// Len returns the number of stored file and folder paths.
func (s *Store) Len() (files, folders int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files), len(s.folders)
}

// Restore replaces the store contents with the given sets without walking
// the filesystem. Used when loading a persisted snapshot; emits no change
// notification and does not rewrite the snapshot.
func (s *Store) Restore(files, folders []string) {
	s.mu.Lock()
	s.files = make(map[string]bool, len(files))
	for _, f := range files {
		s.files[f] = true
	}
	s.folders = make(map[string]bool, len(folders))
	for _, f := range folders {
		s.folders[f] = true
	}
	s.mu.Unlock()
}

// afterMutation persists the snapshot and notifies listeners. Called with
// the lock released so listeners can read the store.
func (s *Store) afterMutation() {
	if s.persister != nil {
		if err := s.persister.Save(s.Files(), s.Folders()); err != nil {
			s.log.WithError(err).Warn("Could not persist selection snapshot")
		}
	}
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func copySet(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k := range set {
		out[k] = true
	}
	return out
}

// statExists reports whether a path still exists on disk.
func statExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
