// Package picker is the interactive tree selector: navigate the
// inclusion tree, toggle files and folders in or out of the context, and
// drill into file symbols.
package picker

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ctxtree/ctxtree/pkg/engine"
)

// Run launches the interactive picker TUI over the given engine.
func Run(eng *engine.Engine) error {
	m := newPickerModel(eng)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	if finalModel.(*pickerModel).err != nil {
		return finalModel.(*pickerModel).err
	}
	return nil
}
