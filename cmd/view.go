package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxtree/ctxtree/pkg/tree"
)

// NewViewCmd renders the inclusion tree.
func NewViewCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the inclusion tree for the workspace",
		Long: `Renders the current inclusion tree. Formats: "tree" (compact ASCII
tree), "list" (flat full-path list), "annotated" (full paths with
inclusion badges and token estimates).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := tree.ParseRenderMode(format)
			if err != nil {
				return err
			}

			eng, _, err := newEngine(nil)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), eng.RenderTree(mode))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "Output format: tree, list or annotated")
	return cmd
}
