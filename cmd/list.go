package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd prints the explicit selection sets.
func NewListCmd() *cobra.Command {
	var foldersOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the explicitly selected files and folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(nil)
			if err != nil {
				return err
			}

			if !foldersOnly {
				for _, f := range eng.ExplicitFiles() {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
			}
			for _, f := range eng.ExplicitFolders() {
				fmt.Fprintln(cmd.OutOrStdout(), f+"/")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&foldersOnly, "folders", false, "List only folders")
	return cmd
}
