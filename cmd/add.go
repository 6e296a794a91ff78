package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxtree/ctxtree/pkg/workspace"
)

// NewAddCmd adds files or folders to the explicit selection. Adding a
// folder records the folder plus every descendant it has right now.
func NewAddCmd() *cobra.Command {
	var extraRoots []string

	cmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "Add files or folders to the context selection",
		Long: `Adds the given paths to the explicit selection. A folder is walked
at add time and all of its current files and subfolders are recorded;
files created inside it later are not members until the folder is
re-added.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(extraRoots)
			if err != nil {
				return err
			}

			for _, path := range args {
				kind, err := resourceKind(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
					continue
				}
				if err := eng.Store().Add(path, kind); err != nil {
					if errors.Is(err, workspace.ErrOutOfWorkspace) {
						fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is outside the workspace, skipped\n", path)
						continue
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", path, kind)
			}

			files, folders := eng.Store().Len()
			fmt.Fprintf(cmd.OutOrStdout(), "Selection: %d files, %d folders\n", files, folders)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&extraRoots, "root", nil, "Additional workspace roots")
	return cmd
}
