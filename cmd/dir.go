package cmd

import (
	"context"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-opener/pkg/resolve"
)

var dirUlog = grovelogging.NewUnifiedLogger("grove-opener.cmd.dir")

// NewDirCmd creates the `fno dir` command.
func NewDirCmd(app **App) *cobra.Command {
	var (
		root         string
		depth        int
		includeRoots bool
	)

	cmd := &cobra.Command{
		Use:     "dir [filter-set]",
		Aliases: []string{"folder"},
		Short:   "Resolve a folder filter set to a single folder",
		Long: `Resolve a folder filter set to a single folder and print its path.

Only folders --depth levels below --root are considered; with
--include-roots the shallower levels and the root itself count too. A
negative depth considers every level.

Examples:
  fno dir projects                  # Any folder matching "projects"
  fno dir --root work --depth 1     # Folders directly below work/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a := *app

			listing, err := a.Listing(ctx)
			if err != nil {
				return err
			}
			scope := scopeFromFlags(cmd, a.Scope(), root, depth, includeRoots)
			r, err := a.Resolver(listing, scope)
			if err != nil {
				return err
			}

			set, err := selectFolderSet(ctx, r, a.Chooser, args)
			if err != nil {
				return finish(err)
			}

			dir, err := r.ResolveFolder(ctx, set)
			if err != nil {
				return finish(err)
			}

			dirUlog.Success("Resolved folder").
				Field("filter_set", set.Name).
				Field("path", dir.String()).
				Pretty(dir.String()).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	addScopeFlags(cmd, &root, &depth, &includeRoots)

	return cmd
}

func addScopeFlags(cmd *cobra.Command, root *string, depth *int, includeRoots *bool) {
	cmd.Flags().StringVar(root, "root", "", "Folder to search below (default from config)")
	cmd.Flags().IntVar(depth, "depth", -1, "Levels below the root to consider, negative for all (default from config)")
	cmd.Flags().BoolVar(includeRoots, "include-roots", false, "Also consider shallower levels and the root itself")
}

// scopeFromFlags overrides the configured scope with the flags the user set.
func scopeFromFlags(cmd *cobra.Command, scope resolve.DirectoryScope, root string, depth int, includeRoots bool) resolve.DirectoryScope {
	if cmd.Flags().Changed("root") {
		scope.Root = root
	}
	if cmd.Flags().Changed("depth") {
		scope.Depth = depth
	}
	if cmd.Flags().Changed("include-roots") {
		scope.IncludeRoots = includeRoots
	}
	return scope
}
