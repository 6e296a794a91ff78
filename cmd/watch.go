package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ctxtree/ctxtree/pkg/tree"
	"github.com/ctxtree/ctxtree/pkg/watch"
)

// NewWatchCmd keeps the inclusion tree in sync with the filesystem,
// reprinting it after each coalesced burst of changes.
func NewWatchCmd() *cobra.Command {
	var extraRoots []string
	var format string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the workspace and rebuild the tree on changes",
		Long: `Watches every workspace root recursively. Filesystem events within the
configured quiet window collapse into a single rebuild; the tree is
reprinted after each rebuild. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := tree.ParseRenderMode(format)
			if err != nil {
				return err
			}

			eng, cfg, err := newEngine(extraRoots)
			if err != nil {
				return err
			}

			deb := watch.NewDebouncer(cfg.DebounceWindow())
			watcher, err := watch.NewWatcher(eng.Roots(), cfg.Ignore, func(path string) {
				deb.Trigger(eng.Refresh)
			}, log)
			if err != nil {
				return err
			}
			defer watcher.Stop()

			eng.OnChange(func() {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), eng.RenderTree(mode))
			})

			fmt.Fprint(cmd.OutOrStdout(), eng.RenderTree(mode))
			fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes (Ctrl-C to stop)...")

			go watcher.Run()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			deb.Cancel()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&extraRoots, "root", nil, "Additional workspace roots")
	cmd.Flags().StringVarP(&format, "format", "f", "tree", "Output format: tree, list or annotated")
	return cmd
}
