package selection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctxtree/ctxtree/pkg/workspace"
)

// newTestWorkspace lays out a small workspace:
//
//	root/
//	  src/
//	    a.go
//	    b.go
//	    util/
//	      c.go
//	  notes.txt
func newTestWorkspace(t *testing.T) (string, *workspace.Roots) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}

	for _, dir := range []string{"src", filepath.Join("src", "util")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	for _, file := range []string{
		filepath.Join("src", "a.go"),
		filepath.Join("src", "b.go"),
		filepath.Join("src", "util", "c.go"),
		"notes.txt",
	} {
		if err := os.WriteFile(filepath.Join(root, file), []byte("package x\n"), 0644); err != nil {
			t.Fatalf("writing %s: %v", file, err)
		}
	}

	roots, err := workspace.NewRoots(root)
	if err != nil {
		t.Fatalf("NewRoots: %v", err)
	}
	return root, roots
}

func TestStore_AddFile(t *testing.T) {
	root, roots := newTestWorkspace(t)
	store := NewStore(roots, nil, nil)

	path := filepath.Join(root, "src", "a.go")
	if err := store.Add(path, KindFile); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if !store.Contains(path, KindFile) {
		t.Error("Expected a.go in the file set")
	}
	files, folders := store.Len()
	if files != 1 || folders != 0 {
		t.Errorf("Expected 1 file, 0 folders, got %d/%d", files, folders)
	}
}

func TestStore_AddFolderSnapshotsDescendants(t *testing.T) {
	root, roots := newTestWorkspace(t)
	store := NewStore(roots, nil, nil)

	src := filepath.Join(root, "src")
	if err := store.Add(src, KindFolder); err != nil {
		t.Fatalf("Add: %v", err)
	}

	fileSet := store.FileSet()
	for _, want := range []string{
		filepath.Join(src, "a.go"),
		filepath.Join(src, "b.go"),
		filepath.Join(src, "util", "c.go"),
	} {
		if !fileSet[want] {
			t.Errorf("Expected %s in the file set after folder add", want)
		}
	}
	if fileSet[filepath.Join(root, "notes.txt")] {
		t.Error("File outside the added folder must not be selected")
	}
	if !store.Contains(filepath.Join(src, "util"), KindFolder) {
		t.Error("Expected nested folder in the folder set")
	}

	// A file created after the add is not a member until re-added.
	late := filepath.Join(src, "late.go")
	if err := os.WriteFile(late, []byte("package x\n"), 0644); err != nil {
		t.Fatalf("writing late file: %v", err)
	}
	if store.Contains(late, KindFile) {
		t.Error("File created after folder add must not join the selection")
	}
	if err := store.Add(src, KindFolder); err != nil {
		t.Fatalf("re-Add: %v", err)
	}
	if !store.Contains(late, KindFile) {
		t.Error("Re-adding the folder should pick up the new file")
	}
}

func TestStore_RemoveFolderCascades(t *testing.T) {
	root, roots := newTestWorkspace(t)
	store := NewStore(roots, nil, nil)

	src := filepath.Join(root, "src")
	if err := store.Add(src, KindFolder); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(filepath.Join(root, "notes.txt"), KindFile); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := store.Remove(src); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	files, folders := store.Len()
	if folders != 0 {
		t.Errorf("Expected no folders after cascade removal, got %d", folders)
	}
	if files != 1 {
		t.Errorf("Expected only notes.txt to survive, got %d files", files)
	}
	if !store.Contains(filepath.Join(root, "notes.txt"), KindFile) {
		t.Error("Unrelated file must survive folder removal")
	}
}

func TestStore_RemoveSingleFileKeepsFolder(t *testing.T) {
	root, roots := newTestWorkspace(t)
	store := NewStore(roots, nil, nil)

	src := filepath.Join(root, "src")
	if err := store.Add(src, KindFolder); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Remove(filepath.Join(src, "a.go")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if store.Contains(filepath.Join(src, "a.go"), KindFile) {
		t.Error("Removed file must leave the file set")
	}
	if !store.Contains(src, KindFolder) {
		t.Error("Folder membership must survive removal of one file")
	}
	if !store.Contains(filepath.Join(src, "b.go"), KindFile) {
		t.Error("Sibling file must survive removal of one file")
	}
}

func TestStore_OutOfWorkspace(t *testing.T) {
	_, roots := newTestWorkspace(t)
	store := NewStore(roots, nil, nil)

	outside, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}

	if err := store.Add(filepath.Join(outside, "x.go"), KindFile); !errors.Is(err, workspace.ErrOutOfWorkspace) {
		t.Errorf("Expected ErrOutOfWorkspace from Add, got %v", err)
	}
	if err := store.Remove(filepath.Join(outside, "x.go")); !errors.Is(err, workspace.ErrOutOfWorkspace) {
		t.Errorf("Expected ErrOutOfWorkspace from Remove, got %v", err)
	}

	files, folders := store.Len()
	if files != 0 || folders != 0 {
		t.Errorf("Rejected mutation must leave the store untouched, got %d/%d", files, folders)
	}
}

func TestStore_OneNotificationPerMutation(t *testing.T) {
	root, roots := newTestWorkspace(t)
	store := NewStore(roots, nil, nil)

	notifications := 0
	store.OnChange(func() { notifications++ })

	// A folder add inserts many paths but is still one mutation.
	if err := store.Add(filepath.Join(root, "src"), KindFolder); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if notifications != 1 {
		t.Errorf("Expected 1 notification after folder add, got %d", notifications)
	}

	if err := store.Remove(filepath.Join(root, "src")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if notifications != 2 {
		t.Errorf("Expected 2 notifications after removal, got %d", notifications)
	}

	store.Clear()
	if notifications != 3 {
		t.Errorf("Expected 3 notifications after clear, got %d", notifications)
	}
}

func TestStore_Clear(t *testing.T) {
	root, roots := newTestWorkspace(t)
	store := NewStore(roots, nil, nil)

	if err := store.Add(filepath.Join(root, "src"), KindFolder); err != nil {
		t.Fatalf("Add: %v", err)
	}
	store.Clear()

	files, folders := store.Len()
	if files != 0 || folders != 0 {
		t.Errorf("Expected empty store after clear, got %d/%d", files, folders)
	}
}
