package picker

import (
	"github.com/ctxtree/ctxtree/pkg/engine"
	"github.com/ctxtree/ctxtree/pkg/tree"
)

// row is one visible line of the flattened tree.
type row struct {
	node  *tree.Node
	depth int
}

type pickerModel struct {
	eng           *engine.Engine
	rows          []row
	expanded      map[string]bool
	cursor        int
	offset        int
	width, height int
	statusMessage string
	showHelp      bool
	err           error
	quitting      bool
}

func newPickerModel(eng *engine.Engine) *pickerModel {
	m := &pickerModel{
		eng:      eng,
		expanded: make(map[string]bool),
	}
	for _, root := range eng.Snapshot().Roots {
		m.expanded[root.Path] = true
	}
	m.reflatten()
	return m
}

// reflatten rebuilds the visible rows from the current snapshot,
// honoring the expand/collapse state.
func (m *pickerModel) reflatten() {
	m.rows = m.rows[:0]
	for _, root := range m.eng.Snapshot().Roots {
		m.appendRows(root, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *pickerModel) appendRows(node *tree.Node, depth int) {
	m.rows = append(m.rows, row{node: node, depth: depth})
	if !m.expanded[node.Path] {
		return
	}
	for _, child := range node.Children {
		m.appendRows(child, depth+1)
	}
}

func (m *pickerModel) current() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}
