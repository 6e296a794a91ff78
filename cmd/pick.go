package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ctxtree/ctxtree/cmd/picker"
)

// NewPickCmd opens the interactive tree picker.
func NewPickCmd() *cobra.Command {
	var extraRoots []string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Interactively pick files and folders for the context",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(extraRoots)
			if err != nil {
				return err
			}
			return picker.Run(eng)
		},
	}

	cmd.Flags().StringSliceVar(&extraRoots, "root", nil, "Additional workspace roots")
	return cmd
}
