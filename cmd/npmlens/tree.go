// # cmd/npmlens/tree.go
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"npmlens/internal/app"
	"npmlens/internal/config"
	"npmlens/internal/output"
	"npmlens/internal/watcher"
)

func newTreeCommand() *cobra.Command {
	var (
		depth int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "tree <package>",
		Short: "Show the module tree of an npm package or local directory",
		Long: "Downloads the package from the registry (or uses a local copy) and prints\n" +
			"its modules, exports, functions, classes, and constants as a tree.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := args[0]
			if strings.Contains(spec, ":") {
				return fmt.Errorf("%q looks like a signature request; use: npmlens sig %s", spec, spec)
			}

			a, formatter, shutdown, err := setup(cmd.Context(), func(cfg *config.Config) {
				if depth > 0 {
					cfg.Explore.MaxDepth = depth
				}
			})
			if err != nil {
				return err
			}
			defer shutdown()

			if watch {
				return watchTree(cmd.Context(), a, spec, formatter)
			}

			rendered, err := a.ExploreTree(cmd.Context(), spec, formatter)
			if err != nil {
				return err
			}
			fmt.Println(rendered)
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum subdirectory depth to explore")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render the tree when local files change")

	return cmd
}

// watchTree renders the tree for a local directory and re-renders on each
// debounced change batch until the context is cancelled.
func watchTree(ctx context.Context, a *app.App, root string, formatter output.Formatter) error {
	name := filepath.Base(root)

	render := func() {
		info, err := a.ExploreLocalRoot(ctx, root, name)
		if err != nil {
			a.Logger.Error("exploration failed", "root", root, "err", err)
			return
		}
		rendered, err := formatter.FormatTree(info)
		if err != nil {
			a.Logger.Error("render failed", "err", err)
			return
		}
		fmt.Println(rendered)
	}

	render()

	w, err := watcher.New(a.Config.Watch.Debounce, a.Config.Explore.Exclude, func(paths []string) {
		a.Logger.Info("files changed", "count", len(paths))
		render()
	}, a.Logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	<-ctx.Done()
	return ctx.Err()
}
