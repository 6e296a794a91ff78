package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewClearCmd empties the explicit selection.
func NewClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the context selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(nil)
			if err != nil {
				return err
			}
			eng.Store().Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared selection")
			return nil
		},
	}
}
