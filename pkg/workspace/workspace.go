// Package workspace tracks the workspace roots the engine is allowed to
// operate on and answers boundary questions for candidate paths.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrOutOfWorkspace is returned when a path falls outside every
	// registered workspace root.
	ErrOutOfWorkspace = errors.New("path is outside all workspace roots")

	// ErrNoWorkspace is returned when an operation needs a workspace root
	// but none has been registered.
	ErrNoWorkspace = errors.New("no workspace root registered")
)

// Roots is the set of workspace root directories. Paths handed to the
// selection store must resolve inside exactly one of them.
type Roots struct {
	paths []string
}

// NewRoots creates a root registry from the given directories. Each root is
// resolved to a canonical absolute path; non-directories are rejected.
func NewRoots(dirs ...string) (*Roots, error) {
	r := &Roots{}
	for _, dir := range dirs {
		if err := r.Add(dir); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers an additional workspace root.
func (r *Roots) Add(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving workspace root %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("workspace root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace root %s is not a directory", dir)
	}
	for _, existing := range r.paths {
		if existing == abs {
			return nil
		}
	}
	r.paths = append(r.paths, abs)
	return nil
}

// List returns the registered roots.
func (r *Roots) List() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Primary returns the first registered root, or ErrNoWorkspace.
func (r *Roots) Primary() (string, error) {
	if len(r.paths) == 0 {
		return "", ErrNoWorkspace
	}
	return r.paths[0], nil
}

// RootOf returns the workspace root containing path. The path does not have
// to exist; containment is decided lexically on the cleaned absolute path.
func (r *Roots) RootOf(path string) (string, error) {
	if len(r.paths) == 0 {
		return "", ErrNoWorkspace
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}
	abs = filepath.Clean(abs)
	for _, root := range r.paths {
		if abs == root || strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return root, nil
		}
	}
	return "", fmt.Errorf("%s: %w", path, ErrOutOfWorkspace)
}

// Contains reports whether path is inside any registered root.
func (r *Roots) Contains(path string) bool {
	_, err := r.RootOf(path)
	return err == nil
}

// Canonicalize resolves path to the canonical absolute form used as a key
// throughout the engine, rejecting paths outside the workspace.
func (r *Roots) Canonicalize(path string) (string, error) {
	if _, err := r.RootOf(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}
