package cmd

import (
	"context"
	"fmt"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-core/tui/theme"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-opener/pkg/filter"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

var matchUlog = grovelogging.NewUnifiedLogger("grove-opener.cmd.match")

// NewMatchCmd creates the `fno match` command.
func NewMatchCmd(app **App) *cobra.Command {
	var (
		dirs         bool
		asTree       bool
		explain      bool
		from         string
		root         string
		depth        int
		includeRoots bool
	)

	cmd := &cobra.Command{
		Use:   "match [filter-set]",
		Short: "Show what a filter set matches without picking",
		Long: `List the candidates a filter set selects, in the order a picker would
present them. Nothing is opened and no picker is shown.

Examples:
  fno match daily                  # Candidates for the daily note set
  fno match daily --from work      # ...with notes near work/ first
  fno match projects --dirs --tree # Folder candidates drawn as a tree
  fno match daily --explain        # Why each note was kept or dropped`,
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

			var (
				setName    string
				candidates []*tree.Entry
				verdicts   []verdict
			)
			if dirs {
				set, err := selectFolderSet(ctx, r, a.Chooser, args)
				if err != nil {
					return finish(err)
				}
				setName = set.Name
				if explain {
					inScope, err := scope.Directories(listing)
					if err != nil {
						return err
					}
					for _, d := range inScope {
						ok, reason := filter.ExplainFolder(set, d)
						verdicts = append(verdicts, verdict{entry: d, selected: ok, reason: reason})
					}
				} else if candidates, err = r.FolderCandidates(set); err != nil {
					return err
				}
			} else {
				origin, err := locateOrigin(listing, a.Settings.Vault, from)
				if err != nil {
					return err
				}
				set, err := selectNoteSet(ctx, r, a.Chooser, args, true)
				if err != nil {
					return finish(err)
				}
				setName = set.Name
				if explain {
					for _, d := range listing.Documents() {
						ok, reason := filter.ExplainNote(set, d)
						verdicts = append(verdicts, verdict{entry: d, selected: ok, reason: reason})
					}
				} else if candidates, err = r.NoteCandidates(set, origin); err != nil {
					return err
				}
			}

			if explain {
				matchUlog.Info("Explained filter set").
					Field("filter_set", setName).
					Field("entries", len(verdicts)).
					Pretty(renderVerdicts(verdicts)).
					PrettyOnly().
					Log(ctx)
				return nil
			}

			pretty := renderList(candidates)
			if asTree {
				pretty = renderTree(a.Settings.Vault, candidates)
			}
			matchUlog.Info("Matched candidates").
				Field("filter_set", setName).
				Field("candidates", len(candidates)).
				Pretty(fmt.Sprintf("%s\n%s", theme.DefaultTheme.Header.Render(countMatches(setName, len(candidates))), pretty)).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dirs, "dirs", false, "Match folders with a folder filter set")
	cmd.Flags().BoolVar(&asTree, "tree", false, "Draw candidates as a tree")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show why each entry was kept or dropped")
	cmd.Flags().StringVar(&from, "from", "", "Current location used to order notes by proximity")
	addScopeFlags(cmd, &root, &depth, &includeRoots)

	return cmd
}

func countMatches(setName string, n int) string {
	if n == 1 {
		return fmt.Sprintf("1 match for %q", setName)
	}
	return fmt.Sprintf("%d matches for %q", n, setName)
}
