// Package tree builds and maintains the tri-state inclusion tree: a mirror
// of the workspace directory hierarchy where every node carries a derived
// inclusion state computed from the explicit selection.
package tree

import (
	"path/filepath"
	"strings"
)

// Inclusion is the tri-state tag on a tree node.
type Inclusion int

const (
	Included Inclusion = iota
	PartiallyIncluded
	NotIncluded
)

func (i Inclusion) String() string {
	switch i {
	case Included:
		return "included"
	case PartiallyIncluded:
		return "partial"
	default:
		return "not-included"
	}
}

// Kind is the node variant.
type Kind int

const (
	KindFolder Kind = iota
	KindFile
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	default:
		return "symbol"
	}
}

// Locator is a source position reference on symbol nodes, used for
// navigation only; the engine's invariants never read it.
type Locator struct {
	Line   int
	Column int
}

// Node is one entry of the inclusion tree. Folder nodes own their
// children, file nodes may own symbol children, symbol nodes are leaves.
// Nodes are rebuilt from scratch on every build pass; only the explicit
// selection survives a rebuild.
type Node struct {
	Path           string
	Label          string
	Kind           Kind
	Inclusion      Inclusion
	IsIntermediary bool
	Tokens         int
	Children       []*Node
	Locator        *Locator
}

// SetInclusion updates the inclusion state and keeps the derived
// IsIntermediary flag in sync.
func (n *Node) SetInclusion(state Inclusion) {
	n.Inclusion = state
	n.IsIntermediary = state == PartiallyIncluded
}

// deriveFromChildren computes a folder-style state from the node's
// current children: Included when there is at least one child and all are
// Included, NotIncluded when there are no children or all are
// NotIncluded, PartiallyIncluded otherwise.
func deriveFromChildren(n *Node) Inclusion {
	if len(n.Children) == 0 {
		return NotIncluded
	}
	allIncluded := true
	allExcluded := true
	for _, child := range n.Children {
		if child.Inclusion != Included {
			allIncluded = false
		}
		if child.Inclusion != NotIncluded {
			allExcluded = false
		}
	}
	switch {
	case allIncluded:
		return Included
	case allExcluded:
		return NotIncluded
	default:
		return PartiallyIncluded
	}
}

// normalizePathKey returns a normalized version of the path for use as a
// map key to handle case-insensitive filesystems. It doesn't change the
// actual path, just provides a consistent key for lookups.
func normalizePathKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

// Tree is one immutable build result: the root nodes plus the path index
// and the matched-path caches for this build cycle. A Tree is never
// patched after Build returns; the next refresh produces a fresh one.
type Tree struct {
	Roots []*Node

	index          map[string]*Node
	matchedFiles   map[string]bool
	matchedFolders map[string]bool
}

// FindNodeByPath resolves a node by path. With includeIntermediary false,
// a partially included node is treated as absent. Absence is a normal
// outcome, not an error.
func (t *Tree) FindNodeByPath(path string, includeIntermediary bool) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	node, ok := t.index[normalizePathKey(path)]
	if !ok {
		return nil, false
	}
	if node.IsIntermediary && !includeIntermediary {
		return nil, false
	}
	return node, true
}

// ParentOf resolves a node's parent through the path index; there are no
// stored back-references. Returns false at a workspace root. A symbol
// node's parent is its owning file.
func (t *Tree) ParentOf(node *Node) (*Node, bool) {
	parentPath := symbolOwnerPath(node.Path)
	if parentPath == node.Path {
		parentPath = filepath.Dir(node.Path)
	}
	if parentPath == node.Path {
		return nil, false
	}
	parent, ok := t.index[normalizePathKey(parentPath)]
	return parent, ok
}

// MatchedFiles returns the matched-file cache for this build cycle.
func (t *Tree) MatchedFiles() map[string]bool {
	return t.matchedFiles
}

// MatchedFolders returns the matched-folder cache for this build cycle.
func (t *Tree) MatchedFolders() map[string]bool {
	return t.matchedFolders
}

// symbolOwnerPath strips the "::symbol" suffix so parent resolution of a
// symbol node lands on its owning file.
func symbolOwnerPath(path string) string {
	if i := strings.Index(path, "::"); i >= 0 {
		return path[:i]
	}
	return path
}

// register adds a node to the path index.
func (t *Tree) register(node *Node) {
	t.index[normalizePathKey(node.Path)] = node
}
