package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctxtree/ctxtree/pkg/tree"
)

// NewGenerateCmd assembles the prompt payload: a project overview section
// followed by the bodies of the selected files.
func NewGenerateCmd() *cobra.Command {
	var output string
	var skipOverview bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assemble the context payload for an LLM prompt",
		Long: `Runs the content selector over the explicit selection and writes the
assembled payload: an annotated project overview followed by each
selected file's content between path-header delimiters. Files matching
the configured exclusion regex, binary files and unreadable files are
skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(nil)
			if err != nil {
				return err
			}

			payload, stats := eng.ContextForPrompt()

			var overview string
			if !skipOverview {
				overview = "=== PROJECT OVERVIEW ===\n" + eng.RenderTree(tree.ModeAnnotated) + "\n"
			}

			text := overview + payload
			if output != "" {
				if err := os.WriteFile(output, []byte(text), 0644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote context to %s\n", output)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), text)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Embedded %d files (%d lines, ~%d tokens), skipped %d\n",
				stats.Files, stats.Lines, stats.Tokens, stats.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the payload to a file instead of stdout")
	cmd.Flags().BoolVar(&skipOverview, "no-overview", false, "Omit the project overview section")
	return cmd
}
