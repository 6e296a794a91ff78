package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// tempRoot returns a temp directory with symlinks resolved, matching the
// canonical form Roots stores.
func tempRoot(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}
	return dir
}

func TestRoots_RootOf(t *testing.T) {
	root := tempRoot(t)
	other := tempRoot(t)

	roots, err := NewRoots(root)
	if err != nil {
		t.Fatalf("NewRoots: %v", err)
	}

	inside := filepath.Join(root, "sub", "file.go")
	got, err := roots.RootOf(inside)
	if err != nil {
		t.Fatalf("RootOf(%s): %v", inside, err)
	}
	if got != root {
		t.Errorf("Expected root %s, got %s", root, got)
	}

	// The path does not have to exist; containment is lexical.
	if !roots.Contains(filepath.Join(root, "does", "not", "exist")) {
		t.Error("Expected non-existent path under root to be contained")
	}

	if _, err := roots.RootOf(filepath.Join(other, "x")); !errors.Is(err, ErrOutOfWorkspace) {
		t.Errorf("Expected ErrOutOfWorkspace for sibling dir, got %v", err)
	}

	// Prefix trickery must not leak past the boundary.
	if roots.Contains(root + "2") {
		t.Error("Expected path sharing a name prefix with the root to be outside")
	}
}

func TestRoots_Canonicalize(t *testing.T) {
	root := tempRoot(t)
	roots, err := NewRoots(root)
	if err != nil {
		t.Fatalf("NewRoots: %v", err)
	}

	messy := filepath.Join(root, "a", "..", "b", ".", "c.go")
	got, err := roots.Canonicalize(messy)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	want := filepath.Join(root, "b", "c.go")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if _, err := roots.Canonicalize("/definitely/elsewhere"); !errors.Is(err, ErrOutOfWorkspace) {
		t.Errorf("Expected ErrOutOfWorkspace, got %v", err)
	}
}

func TestRoots_AddRejectsFiles(t *testing.T) {
	root := tempRoot(t)
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := NewRoots(file); err == nil {
		t.Error("Expected error for file as workspace root")
	}
	if _, err := NewRoots(filepath.Join(root, "missing")); err == nil {
		t.Error("Expected error for missing workspace root")
	}
}

func TestRoots_Primary(t *testing.T) {
	empty := &Roots{}
	if _, err := empty.Primary(); !errors.Is(err, ErrNoWorkspace) {
		t.Errorf("Expected ErrNoWorkspace, got %v", err)
	}

	root := tempRoot(t)
	second := tempRoot(t)
	roots, err := NewRoots(root, second)
	if err != nil {
		t.Fatalf("NewRoots: %v", err)
	}
	primary, err := roots.Primary()
	if err != nil {
		t.Fatalf("Primary: %v", err)
	}
	if primary != root {
		t.Errorf("Expected primary %s, got %s", root, primary)
	}
	if len(roots.List()) != 2 {
		t.Errorf("Expected 2 roots, got %d", len(roots.List()))
	}
}
