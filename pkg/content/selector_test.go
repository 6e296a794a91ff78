package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func TestSelector_RegexFiltering(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"x.ts":      "export const x = 1\n",
		"x.test.ts": "test x\n",
		"y.go":      "package y\n",
	})

	sel, err := NewSelector(`.*\.ts$`, `.*\.test\.ts$`, nil)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	files := []string{
		filepath.Join(root, "x.ts"),
		filepath.Join(root, "x.test.ts"),
		filepath.Join(root, "y.go"),
	}
	got := sel.SelectFiles(files, nil)

	if len(got) != 1 || got[0] != filepath.Join(root, "x.ts") {
		t.Errorf("Expected only x.ts to survive, got %v", got)
	}
}

func TestSelector_FolderWalk(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		filepath.Join("src", "a.go"):           "package a\n",
		filepath.Join("src", "deep", "b.go"):   "package b\n",
		filepath.Join("src", "deep", "c.json"): "{}\n",
	})

	sel, err := NewSelector(`.*\.go$`, "", nil)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	got := sel.SelectFiles(nil, []string{filepath.Join(root, "src")})

	want := []string{
		filepath.Join(root, "src", "a.go"),
		filepath.Join(root, "src", "deep", "b.go"),
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, got[i])
		}
	}
}

func TestSelector_Deduplicates(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		filepath.Join("src", "a.go"): "package a\n",
	})

	sel, err := NewSelector("", "", nil)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	// The file is both explicit and reachable through the folder walk.
	explicit := filepath.Join(root, "src", "a.go")
	got := sel.SelectFiles([]string{explicit}, []string{filepath.Join(root, "src")})
	if len(got) != 1 {
		t.Errorf("Expected deduplicated result, got %v", got)
	}
}

func TestSelector_EmptyPatternsMatchAll(t *testing.T) {
	sel, err := NewSelector("", "", nil)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	if !sel.matches("/any/path/at/all.xyz") {
		t.Error("Empty inclusion pattern must match everything")
	}
}

func TestSelector_BadPattern(t *testing.T) {
	if _, err := NewSelector("[", "", nil); err == nil {
		t.Error("Expected error for invalid inclusion pattern")
	}
	if _, err := NewSelector("", "[", nil); err == nil {
		t.Error("Expected error for invalid exclusion pattern")
	}
}

func TestAssemble(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.go": "package a\nvar A = 1\n",
		"b.go": "package b\n",
	})

	sel, err := NewSelector("", "", nil)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	aPath := filepath.Join(root, "a.go")
	bPath := filepath.Join(root, "b.go")
	payload, stats := sel.Assemble([]string{aPath, bPath})

	if stats.Files != 2 || stats.Skipped != 0 {
		t.Errorf("Expected 2 embedded, 0 skipped, got %d/%d", stats.Files, stats.Skipped)
	}
	if stats.Lines != 3 {
		t.Errorf("Expected 3 lines total, got %d", stats.Lines)
	}

	for _, want := range []string{
		"=== FILE: " + aPath + " ===\n",
		"package a\nvar A = 1\n",
		"=== END FILE: " + aPath + " ===\n",
		"=== FILE: " + bPath + " ===\n",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("Expected payload to contain %q", want)
		}
	}
}

func TestAssemble_SkipsBinaryAndUnreadable(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"good.go": "package good\n",
	})
	binPath := filepath.Join(root, "blob.bin")
	if err := os.WriteFile(binPath, []byte{0x00, 0x01, 0x02}, 0644); err != nil {
		t.Fatalf("writing binary: %v", err)
	}

	sel, err := NewSelector("", "", nil)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	payload, stats := sel.Assemble([]string{
		filepath.Join(root, "good.go"),
		binPath,
		filepath.Join(root, "vanished.go"),
	})

	if stats.Files != 1 {
		t.Errorf("Expected 1 embedded file, got %d", stats.Files)
	}
	if stats.Skipped != 2 {
		t.Errorf("Expected binary and missing files to be skipped, got %d", stats.Skipped)
	}
	if strings.Contains(payload, "blob.bin") {
		t.Error("Binary content must not reach the payload")
	}
	if !strings.Contains(payload, "package good") {
		t.Error("Readable file must survive the bad siblings")
	}
}

func TestIsBinaryFile(t *testing.T) {
	root := t.TempDir()

	elf := filepath.Join(root, "tool")
	if err := os.WriteFile(elf, []byte{0x7f, 'E', 'L', 'F', 0, 0}, 0755); err != nil {
		t.Fatalf("writing elf: %v", err)
	}
	text := filepath.Join(root, "Makefile")
	if err := os.WriteFile(text, []byte("all:\n\techo hi\n"), 0644); err != nil {
		t.Fatalf("writing makefile: %v", err)
	}

	if !isBinaryFile(elf) {
		t.Error("ELF header must be detected as binary")
	}
	if isBinaryFile(text) {
		t.Error("Makefile must be treated as text")
	}
	if !isBinaryFile(filepath.Join(root, "image.png")) {
		t.Error("Known binary extension must be detected without reading")
	}
	if isBinaryFile(filepath.Join(root, "source.go")) {
		t.Error("Known text extension must be treated as text")
	}
}
