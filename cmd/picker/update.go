package picker

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ctxtree/ctxtree/pkg/selection"
	"github.com/ctxtree/ctxtree/pkg/tree"
)

type clearStatusMsg struct{}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second*2, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *pickerModel) Init() tea.Cmd {
	return nil
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.eng.FlushPending()
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case "g":
			m.cursor = 0
			return m, nil

		case "G":
			m.cursor = len(m.rows) - 1
			return m, nil

		case "right", "l":
			if node := m.current(); node != nil && len(node.Children) > 0 {
				m.expanded[node.Path] = true
				m.reflatten()
			}
			return m, nil

		case "left", "h":
			if node := m.current(); node != nil {
				m.expanded[node.Path] = false
				m.reflatten()
			}
			return m, nil

		case " ", "enter":
			return m.toggleCurrent()

		case "s":
			return m.loadSymbols()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	return m, nil
}

// toggleCurrent flips the inclusion of the node under the cursor. Symbol
// rows carry no selection of their own; they report their location
// instead.
func (m *pickerModel) toggleCurrent() (tea.Model, tea.Cmd) {
	node := m.current()
	if node == nil {
		return m, nil
	}

	if node.Kind == tree.KindSymbol {
		m.statusMessage = fmt.Sprintf("%s at line %d, column %d", node.Label, node.Locator.Line, node.Locator.Column)
		return m, clearStatusCmd()
	}

	kind := selection.KindFile
	if node.Kind == tree.KindFolder {
		kind = selection.KindFolder
	}
	include := node.Inclusion != tree.Included

	if err := m.eng.SetInclusion(node.Path, kind, include); err != nil {
		m.statusMessage = fmt.Sprintf("Could not toggle %s: %v", node.Label, err)
		return m, clearStatusCmd()
	}

	if include {
		m.statusMessage = fmt.Sprintf("Included %s", node.Label)
	} else {
		m.statusMessage = fmt.Sprintf("Excluded %s", node.Label)
	}
	m.reflatten()
	return m, clearStatusCmd()
}

// loadSymbols attaches symbol children to the file under the cursor and
// expands it.
func (m *pickerModel) loadSymbols() (tea.Model, tea.Cmd) {
	node := m.current()
	if node == nil || node.Kind != tree.KindFile {
		return m, nil
	}

	if err := m.eng.PopulateSymbols(node); err != nil {
		m.statusMessage = fmt.Sprintf("Could not read symbols: %v", err)
		return m, clearStatusCmd()
	}
	if len(node.Children) == 0 {
		m.statusMessage = fmt.Sprintf("No symbols found in %s", node.Label)
		return m, clearStatusCmd()
	}

	m.expanded[node.Path] = true
	m.reflatten()
	return m, nil
}
