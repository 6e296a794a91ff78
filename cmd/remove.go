package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxtree/ctxtree/pkg/workspace"
)

// NewRemoveCmd removes files or folders from the explicit selection.
func NewRemoveCmd() *cobra.Command {
	var extraRoots []string

	cmd := &cobra.Command{
		Use:   "remove <path>...",
		Short: "Remove files or folders from the context selection",
		Long: `Removes the given paths from the explicit selection. Removing a
folder also removes every stored path nested under it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(extraRoots)
			if err != nil {
				return err
			}

			for _, path := range args {
				if err := eng.Store().Remove(path); err != nil {
					if errors.Is(err, workspace.ErrOutOfWorkspace) {
						fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is outside the workspace, skipped\n", path)
						continue
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
			}

			files, folders := eng.Store().Len()
			fmt.Fprintf(cmd.OutOrStdout(), "Selection: %d files, %d folders\n", files, folders)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&extraRoots, "root", nil, "Additional workspace roots")
	return cmd
}
