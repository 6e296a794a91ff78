package picker

import (
	"fmt"
	"strings"

	"github.com/ctxtree/ctxtree/pkg/tree"
)

const shortHelp = "↑/↓ move · space toggle · ←/→ collapse/expand · s symbols · ? help · q quit"

const fullHelp = `  ↑/k, ↓/j    move cursor
  g, G        jump to top / bottom
  →/l, ←/h    expand / collapse folder
  space/enter toggle inclusion
  s           load symbols for a file
  ?           toggle this help
  q, esc      quit`

func (m *pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ctxtree · context picker"))
	b.WriteString("\n\n")

	visible := m.height - 6
	if visible < 1 {
		visible = len(m.rows)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		line := prefix + strings.Repeat("  ", r.depth) + renderRow(r.node)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusMessage != "" {
		b.WriteString(statusStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString(helpStyle.Render(fullHelp))
	} else {
		b.WriteString(helpStyle.Render(shortHelp))
	}
	return b.String()
}

func renderRow(node *tree.Node) string {
	if node.Kind == tree.KindSymbol {
		return symbolStyle.Render("• " + node.Label)
	}

	label := node.Label
	if node.Kind == tree.KindFolder {
		label += "/"
	}

	switch node.Inclusion {
	case tree.Included:
		line := "[x] " + label
		if node.Kind == tree.KindFile && node.Tokens > 0 {
			line += fmt.Sprintf(" ~%d tokens", node.Tokens)
		}
		return includedStyle.Render(line)
	case tree.PartiallyIncluded:
		return partialStyle.Render("[~] " + label)
	default:
		return excludedStyle.Render("[ ] " + label)
	}
}
