package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ctxtree/ctxtree/pkg/workspace"
)

// SelectionView is the read-only slice of the selection store the builder
// needs: the current explicit file and folder sets as lookup maps keyed by
// canonical absolute path.
type SelectionView interface {
	FileSet() map[string]bool
	FolderSet() map[string]bool
}

// Builder composes the filesystem walker and the inclusion classifier
// into a node hierarchy. Each call to Build produces a fresh Tree; the
// matched-path caches live exactly as long as that Tree.
type Builder struct {
	roots     *workspace.Roots
	selection SelectionView
	skipNames map[string]bool
	log       *logrus.Entry
}

// NewBuilder creates a builder over the given workspace roots and
// selection view. skipNames lists directory basenames never descended
// into (defaults to .git and the state directory).
func NewBuilder(roots *workspace.Roots, selection SelectionView, skipNames []string, log *logrus.Entry) *Builder {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	skip := map[string]bool{".git": true}
	for _, name := range skipNames {
		skip[name] = true
	}
	return &Builder{
		roots:     roots,
		selection: selection,
		skipNames: skip,
		log:       log.WithField("component", "builder"),
	}
}

// folderStats carries the per-subtree counters the classifier needs to
// decide a folder's state against the live filesystem: explicit files are
// materialized as nodes, but files on disk that are not selected still
// make an ancestor folder partial rather than fully included.
type folderStats struct {
	selectedFiles int
	omittedFiles  int
}

func (s *folderStats) merge(other folderStats) {
	s.selectedFiles += other.selectedFiles
	s.omittedFiles += other.omittedFiles
}

// Build enumerates every workspace root and produces the stabilized tree.
// Folders are always materialized to preserve navigable structure; file
// nodes exist only for explicitly selected paths. A read failure on one
// directory degrades that subtree to an empty child list and the build
// continues.
func (b *Builder) Build() (*Tree, error) {
	t := &Tree{
		index:          make(map[string]*Node),
		matchedFiles:   b.selection.FileSet(),
		matchedFolders: b.selection.FolderSet(),
	}

	for _, root := range b.roots.List() {
		node, _ := b.buildFolder(t, root)
		t.Roots = append(t.Roots, node)
	}

	files, folders := len(t.matchedFiles), len(t.matchedFolders)
	b.log.WithFields(logrus.Fields{
		"roots":            len(t.Roots),
		"explicit_files":   files,
		"explicit_folders": folders,
	}).Debug("Built inclusion tree")

	return t, nil
}

// buildFolder recursively materializes one folder. It returns the node
// plus the subtree counters used to classify ancestors.
func (b *Builder) buildFolder(t *Tree, dir string) (*Node, folderStats) {
	node := &Node{
		Path:  dir,
		Label: filepath.Base(dir),
		Kind:  KindFolder,
	}
	t.register(node)

	var stats folderStats

	entries, err := os.ReadDir(dir)
	if err != nil {
		// One unreadable directory must not abort the whole rebuild.
		b.log.WithError(err).WithField("dir", dir).Warn("Could not read directory, treating as empty")
		entries = nil
	}

	for _, entry := range entries {
		name := entry.Name()
		childPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if b.skipNames[name] {
				continue
			}
			child, childStats := b.buildFolder(t, childPath)
			node.Children = append(node.Children, child)
			node.Tokens += child.Tokens
			stats.merge(childStats)
			continue
		}

		if !t.matchedFiles[childPath] {
			// Unselected files are omitted from the tree entirely, but
			// they still count against full inclusion of the ancestors.
			stats.omittedFiles++
			continue
		}

		child := &Node{
			Path:  childPath,
			Label: name,
			Kind:  KindFile,
		}
		child.SetInclusion(Included)
		if info, err := entry.Info(); err == nil {
			// Rough estimate: four bytes per token.
			child.Tokens = int(info.Size() / 4)
		}
		t.register(child)
		node.Children = append(node.Children, child)
		node.Tokens += child.Tokens
		stats.selectedFiles++
	}

	sortChildren(node)
	node.SetInclusion(classifyFolder(stats))
	return node, stats
}

// classifyFolder decides a folder's state from its subtree counters:
// nothing selected means not included, everything on disk selected means
// included, a mix means partially included.
func classifyFolder(stats folderStats) Inclusion {
	switch {
	case stats.selectedFiles == 0:
		return NotIncluded
	case stats.omittedFiles == 0:
		return Included
	default:
		return PartiallyIncluded
	}
}

// sortChildren orders a folder's children: directories first, then by
// case-insensitive name.
func sortChildren(node *Node) {
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if (a.Kind == KindFolder) != (b.Kind == KindFolder) {
			return a.Kind == KindFolder
		}
		return strings.ToLower(a.Label) < strings.ToLower(b.Label)
	})
}
