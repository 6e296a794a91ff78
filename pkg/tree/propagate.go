package tree

// Cascade applies state to node and every descendant. It is the top-down
// half of propagation, used when a user gesture means "treat this whole
// subtree as included/excluded". It never touches ancestors; pair it with
// BubbleUp for that direction.
func Cascade(node *Node, state Inclusion) {
	node.SetInclusion(state)
	for _, child := range node.Children {
		Cascade(child, state)
	}
}

// BubbleUp recomputes ancestor states starting at node's parent: each
// ancestor's inclusion is re-derived from its current children, repeating
// until the workspace root or until a parent cannot be resolved. Calling
// it twice with no intervening mutation changes nothing.
func BubbleUp(t *Tree, node *Node) {
	current := node
	for {
		parent, ok := t.ParentOf(current)
		if !ok || parent == nil {
			return
		}
		parent.SetInclusion(deriveFromChildren(parent))
		current = parent
	}
}
