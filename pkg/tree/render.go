package tree

import (
	"fmt"
	"strings"
)

// RenderMode selects the text serialization of the tree.
type RenderMode int

const (
	// ModeTree is a compact ASCII tree.
	ModeTree RenderMode = iota
	// ModeList is a flat list of full paths.
	ModeList
	// ModeAnnotated is a full-path list with inclusion badges and token
	// estimates.
	ModeAnnotated
)

// ParseRenderMode maps a CLI flag value onto a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	switch s {
	case "", "tree":
		return ModeTree, nil
	case "list":
		return ModeList, nil
	case "annotated":
		return ModeAnnotated, nil
	default:
		return ModeTree, fmt.Errorf("unknown render format %q (want tree, list or annotated)", s)
	}
}

// Render serializes an already-stabilized tree. It only reads the
// snapshot it was given, so it is safe to call while the next rebuild is
// in flight: the caller holds its own Tree reference and the builder
// never mutates a published Tree.
func Render(t *Tree, mode RenderMode) string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, root := range t.Roots {
		switch mode {
		case ModeList:
			renderList(&sb, root)
		case ModeAnnotated:
			renderAnnotated(&sb, root)
		default:
			sb.WriteString(root.Path)
			sb.WriteString("\n")
			renderTree(&sb, root, "")
		}
	}
	return sb.String()
}

func renderTree(sb *strings.Builder, node *Node, prefix string) {
	for i, child := range node.Children {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(node.Children)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(child.Label)
		if child.Kind == KindFolder {
			sb.WriteString("/")
		}
		sb.WriteString("\n")
		renderTree(sb, child, childPrefix)
	}
}

func renderList(sb *strings.Builder, node *Node) {
	sb.WriteString(node.Path)
	sb.WriteString("\n")
	for _, child := range node.Children {
		renderList(sb, child)
	}
}

func renderAnnotated(sb *strings.Builder, node *Node) {
	fmt.Fprintf(sb, "%s %s", badge(node.Inclusion), node.Path)
	if node.Tokens > 0 {
		fmt.Fprintf(sb, " (~%d tokens)", node.Tokens)
	}
	sb.WriteString("\n")
	for _, child := range node.Children {
		renderAnnotated(sb, child)
	}
}

// badge returns the inclusion marker used in annotated output.
func badge(state Inclusion) string {
	switch state {
	case Included:
		return "[x]"
	case PartiallyIncluded:
		return "[~]"
	default:
		return "[ ]"
	}
}
