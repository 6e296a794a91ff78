package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ctxtree/ctxtree/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ctxtree",
		Short:         "Tri-state context selection for LLM prompts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.NewAddCmd())
	rootCmd.AddCommand(cmd.NewRemoveCmd())
	rootCmd.AddCommand(cmd.NewClearCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewViewCmd())
	rootCmd.AddCommand(cmd.NewGenerateCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewPickCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
